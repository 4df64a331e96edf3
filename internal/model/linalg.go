package model

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// rankCutoff is the relative singular value below which a direction is
// treated as absent.
const rankCutoff = 1e-10

// leastSquares returns the minimum-norm X minimizing |a*X - b| together
// with the effective rank of a. A rank-deficient a is allowed.
func leastSquares(a, b mat.Matrix) (*mat.Dense, int, error) {
	m, n := a.Dims()
	_, k := b.Dims()

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, 0, errors.New("SVD factorization failed")
	}
	s := svd.Values(nil)

	rank := 0
	for _, v := range s {
		if v > rankCutoff*s[0] {
			rank++
		}
	}

	x := mat.NewDense(n, k, nil)
	if rank == 0 {
		return x, 0, nil
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// x = V_r * S_r^-1 * U_r^T * b
	var c mat.Dense
	c.Mul(u.Slice(0, m, 0, rank).T(), b)
	for i := 0; i < rank; i++ {
		for j := 0; j < k; j++ {
			c.Set(i, j, c.At(i, j)/s[i])
		}
	}
	x.Mul(v.Slice(0, n, 0, rank), &c)

	return x, rank, nil
}
