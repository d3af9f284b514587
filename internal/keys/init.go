// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import (
	"crypto/elliptic"
	"math/big"
	"sync"
)

// curveParams holds the P-256 field constants used to recover and classify
// compact public keys.
type curveParams struct {
	curve elliptic.Curve
	p     *big.Int
	b     *big.Int
	halfP *big.Int // (p-1)/2
}

var (
	initOnce sync.Once
	p256     *curveParams
)

// Init performs the process-wide setup of the key subsystem. It is idempotent
// and safe for concurrent use; every decoder calls it before interpreting key bytes.
func Init() {
	initOnce.Do(func() {
		curve := elliptic.P256()
		params := curve.Params()
		p256 = &curveParams{
			curve: curve,
			p:     new(big.Int).Set(params.P),
			b:     new(big.Int).Set(params.B),
			halfP: new(big.Int).Rsh(params.P, 1),
		}
	})
}

func eccParams() *curveParams {
	Init()
	return p256
}

// isCompact reports whether y is the smaller of the two roots y and p-y.
func (c *curveParams) isCompact(y []byte) bool {
	return new(big.Int).SetBytes(y).Cmp(c.halfP) <= 0
}

// decompress returns the uncompressed SEC1 encoding (0x04 || x || y) of the
// compact point with the given x coordinate.
func (c *curveParams) decompress(x []byte) ([]byte, error) {
	bx := new(big.Int).SetBytes(x)
	if bx.Cmp(c.p) >= 0 {
		return nil, ErrInvalidKey
	}

	// y^2 = x^3 - 3x + b
	rhs := new(big.Int).Mul(bx, bx)
	rhs.Mul(rhs, bx)
	threeX := new(big.Int).Lsh(bx, 1)
	threeX.Add(threeX, bx)
	rhs.Sub(rhs, threeX)
	rhs.Add(rhs, c.b)
	rhs.Mod(rhs, c.p)

	y := new(big.Int).ModSqrt(rhs, c.p)
	if y == nil {
		return nil, ErrInvalidKey
	}
	if y.Cmp(c.halfP) > 0 {
		y.Sub(c.p, y)
	}

	out := make([]byte, 1+2*eccCoordinateSize)
	out[0] = 0x04
	bx.FillBytes(out[1 : 1+eccCoordinateSize])
	y.FillBytes(out[1+eccCoordinateSize:])
	return out, nil
}
