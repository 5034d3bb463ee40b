package weierstrass

import (
	"math/big"
	"sync"
)

var (
	initonce        sync.Once
	secp256k1Params *Params
	p256Params      *Params
)

func initAll() {
	secp256k1Params = &Params{
		A:       new(big.Int),
		B:       big.NewInt(7),
		P:       fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
		N:       fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
		Gx:      fromHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		Gy:      fromHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
		BitSize: 256,
		Name:    "secp256k1",
	}

	p256Params = &Params{
		A:       fromHex("FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFC"),
		B:       fromHex("5AC635D8AA3A93E7B3EBBD55769886BC651D06B0CC53B0F63BCE3C3E27D2604B"),
		P:       fromHex("FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFF"),
		N:       fromHex("FFFFFFFF00000000FFFFFFFFFFFFFFFFBCE6FAADA7179E84F3B9CAC2FC632551"),
		Gx:      fromHex("6B17D1F2E12C4247F8BCE6E563A440F277037D812DEB33A0F4A13945D898C296"),
		Gy:      fromHex("4FE342E2FE1A7F9B8EE7EB4A7C0F9E162BCE33576B315ECECBB6406837BF51F5"),
		BitSize: 256,
		Name:    "P-256",
	}
}

// Secp256k1 returns the parameters of the SEC 2 secp256k1 curve.
func Secp256k1() *Params {
	initonce.Do(initAll)
	return secp256k1Params
}

// P256 returns the parameters of NIST P-256 (secp256r1).
func P256() *Params {
	initonce.Do(initAll)
	return p256Params
}

func fromHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("weierstrass: invalid hex constant " + s)
	}
	return n
}
