package truss

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solution is the raw least-squares answer to A·x = F.
type Solution struct {
	// X holds bar forces followed by reaction magnitudes, in system
	// column order.
	X *mat.VecDense

	// Rank is the numerical rank of A.
	Rank int

	// Residual is the Euclidean norm of A·x - F. Zero (to tolerance)
	// means the equilibrium equations are satisfied exactly.
	Residual float64
}

// Solve computes the minimum-norm least-squares solution of the assembled
// system. A need not be square: more unknowns than equations means a
// statically indeterminate structure, fewer an unstable one; both still
// yield a well-defined answer. A numerical failure (factorization error or
// non-finite values) is reported as UnsolvableError.
func Solve(sys *System) (*Solution, error) {
	var svd mat.SVD
	if ok := svd.Factorize(sys.A, mat.SVDThin); !ok {
		return nil, &UnsolvableError{Err: errors.New("SVD factorization did not converge")}
	}

	// Same rank cutoff as the usual lstsq default: machine epsilon
	// scaled by the larger matrix dimension.
	rows, cols := sys.A.Dims()
	rcond := machEps * float64(max(rows, cols))
	rank := svd.Rank(rcond)
	if rank == 0 {
		return nil, &UnsolvableError{Err: errors.New("coefficient matrix has rank zero")}
	}

	x := mat.NewVecDense(cols, nil)
	svd.SolveVecTo(x, sys.F, rank)

	for i := 0; i < x.Len(); i++ {
		if v := x.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &UnsolvableError{Err: errors.New("solution contains non-finite values")}
		}
	}

	var r mat.VecDense
	r.MulVec(sys.A, x)
	r.SubVec(&r, sys.F)

	return &Solution{
		X:        x,
		Rank:     rank,
		Residual: mat.Norm(&r, 2),
	}, nil
}

const machEps = 2.220446049250313e-16
