package curves

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecbasics/internal/crypto/weierstrass"
	"github.com/smallyu/go-ecbasics/pkg/ecc"
)

func allGroups(t *testing.T) []ecc.Group {
	t.Helper()
	var groups []ecc.Group
	for _, name := range SupportedCurves() {
		g, err := FromName(name)
		require.NoError(t, err)
		groups = append(groups, g)
	}
	return groups
}

func TestGroupLaws(t *testing.T) {
	for _, g := range allGroups(t) {
		t.Run(g.Name(), func(t *testing.T) {
			a, err := g.NewScalar()
			require.NoError(t, err)
			b, err := g.NewScalar()
			require.NoError(t, err)

			aG, err := g.ScalarBaseMult(a)
			require.NoError(t, err)
			bG, err := g.ScalarBaseMult(b)
			require.NoError(t, err)

			// (a+b)G == aG + bG
			sum, err := g.Add(aG, bG)
			require.NoError(t, err)
			ab := new(big.Int).Add(a, b)
			abG, err := g.ScalarBaseMult(ab)
			require.NoError(t, err)
			assert.True(t, sum.Equal(abG))

			// a(bG) == b(aG)
			s1, err := g.ScalarMult(bG, a)
			require.NoError(t, err)
			s2, err := g.ScalarMult(aG, b)
			require.NoError(t, err)
			assert.True(t, s1.Equal(s2))
			assert.Equal(t, s1.Bytes(), s2.Bytes())

			// P + P == 2P
			dbl, err := g.Add(aG, aG)
			require.NoError(t, err)
			twoA, err := g.ScalarMult(aG, big.NewInt(2))
			require.NoError(t, err)
			assert.True(t, dbl.Equal(twoA))
		})
	}
}

func TestGroupIdentity(t *testing.T) {
	for _, g := range allGroups(t) {
		t.Run(g.Name(), func(t *testing.T) {
			assert.False(t, g.Generator().IsIdentity())

			zero, err := g.ScalarBaseMult(big.NewInt(0))
			require.NoError(t, err)
			assert.True(t, zero.IsIdentity())

			n, err := g.ScalarBaseMult(g.Order())
			require.NoError(t, err)
			assert.True(t, n.IsIdentity())

			one, err := g.ScalarBaseMult(big.NewInt(1))
			require.NoError(t, err)
			assert.True(t, one.Equal(g.Generator()))

			r, err := g.Add(g.Generator(), zero)
			require.NoError(t, err)
			assert.True(t, r.Equal(g.Generator()))
		})
	}
}

func TestParsePointRoundTrip(t *testing.T) {
	for _, g := range allGroups(t) {
		t.Run(g.Name(), func(t *testing.T) {
			k, err := g.NewScalar()
			require.NoError(t, err)
			p, err := g.ScalarBaseMult(k)
			require.NoError(t, err)

			q, err := g.ParsePoint(p.Bytes())
			require.NoError(t, err)
			assert.True(t, p.Equal(q))

			_, err = g.ParsePoint([]byte{0x01, 0x02})
			assert.ErrorIs(t, err, ecc.ErrInvalidPoint)
		})
	}
}

func TestMismatchedPointType(t *testing.T) {
	ed := NewEd25519()
	k1 := NewSecp256k1()
	_, err := k1.ScalarMult(ed.Generator(), big.NewInt(2))
	assert.ErrorIs(t, err, ecc.ErrInvalidPoint)
	_, err = ed.Add(ed.Generator(), k1.Generator())
	assert.ErrorIs(t, err, ecc.ErrInvalidPoint)

	// Same curve, different engines.
	_, err = NewSecp256k1Ladder().ScalarMult(k1.Generator(), big.NewInt(2))
	assert.ErrorIs(t, err, ecc.ErrInvalidPoint)
	assert.False(t, k1.Generator().Equal(NewSecp256k1Ladder().Generator()))
}

func TestSecp256k1EnginesAgree(t *testing.T) {
	fast := NewSecp256k1()
	ladder := NewSecp256k1Ladder()
	for i := 0; i < 4; i++ {
		k, err := fast.NewScalar()
		require.NoError(t, err)
		a, err := fast.ScalarBaseMult(k)
		require.NoError(t, err)
		b, err := ladder.ScalarBaseMult(k)
		require.NoError(t, err)
		assert.Equal(t, a.Bytes(), b.Bytes())
	}
	assert.Equal(t, fast.Order(), ladder.Order())
}

// order2Bytes encodes (0, -1), the point of order two.
func order2Bytes() []byte {
	b := bytes.Repeat([]byte{0xff}, 32)
	b[0] = 0xec
	b[31] = 0x7f
	return b
}

// torsionOfOrder8 finds a point of exact order 8 by taking the torsion
// component [l]P of random curve points.
func torsionOfOrder8(t *testing.T) *edwards25519.Point {
	t.Helper()
	identity := edwards25519.NewIdentityPoint()
	buf := make([]byte, 32)
	for i := 0; i < 256; i++ {
		_, err := rand.Read(buf)
		require.NoError(t, err)
		p, err := edwards25519.NewIdentityPoint().SetBytes(buf)
		if err != nil {
			continue
		}
		tp := mulByOrder(p)
		t4 := edwards25519.NewIdentityPoint().Add(tp, tp)
		t4.Add(t4, t4)
		if t4.Equal(identity) == 0 {
			return tp
		}
	}
	t.Fatal("no order-8 point found")
	return nil
}

func TestEd25519RejectsSmallOrder(t *testing.T) {
	g := NewEd25519()

	_, err := g.ParsePoint(order2Bytes())
	assert.ErrorIs(t, err, ecc.ErrInvalidPoint)

	t8 := torsionOfOrder8(t)
	_, err = g.ParsePoint(t8.Bytes())
	assert.ErrorIs(t, err, ecc.ErrInvalidPoint)

	identity := make([]byte, 32)
	identity[0] = 0x01
	p, err := g.ParsePoint(identity)
	require.NoError(t, err)
	assert.True(t, p.IsIdentity())
}

func TestEd25519RejectsMixedOrder(t *testing.T) {
	g := NewEd25519()
	base := edwards25519.NewGeneratorPoint()

	t2, err := edwards25519.NewIdentityPoint().SetBytes(order2Bytes())
	require.NoError(t, err)

	for name, torsion := range map[string]*edwards25519.Point{
		"G+T2": t2,
		"G+T8": torsionOfOrder8(t),
	} {
		t.Run(name, func(t *testing.T) {
			mixed := edwards25519.NewIdentityPoint().Add(base, torsion)
			assert.False(t, inPrimeOrderSubgroup(mixed))

			_, err := g.ParsePoint(mixed.Bytes())
			assert.ErrorIs(t, err, ecc.ErrInvalidPoint)
		})
	}

	// Clean multiples of G stay accepted.
	k, err := g.NewScalar()
	require.NoError(t, err)
	kG, err := g.ScalarBaseMult(k)
	require.NoError(t, err)
	assert.True(t, inPrimeOrderSubgroup(base))
	_, err = g.ParsePoint(kG.Bytes())
	require.NoError(t, err)
}

func TestRistretto255RejectsNonCanonical(t *testing.T) {
	b := make([]byte, 32)
	for i := range b {
		b[i] = 0xff
	}
	_, err := NewRistretto255().ParsePoint(b)
	assert.ErrorIs(t, err, ecc.ErrInvalidPoint)
}

func TestDigestSigners(t *testing.T) {
	digest := sha256.Sum256([]byte("hello"))
	other := sha256.Sum256([]byte("hellO"))

	for _, name := range []string{"secp256k1", "secp256k1-ladder", "p256"} {
		t.Run(name, func(t *testing.T) {
			g, err := FromName(name)
			require.NoError(t, err)
			signer, ok := g.(ecc.DigestSigner)
			require.True(t, ok)

			d, err := g.NewScalar()
			require.NoError(t, err)
			pub, err := g.ScalarBaseMult(d)
			require.NoError(t, err)

			sig, err := signer.SignDigest(d, digest[:])
			require.NoError(t, err)
			assert.True(t, signer.VerifyDigest(pub, digest[:], sig))
			assert.False(t, signer.VerifyDigest(pub, other[:], sig))
			assert.False(t, signer.VerifyDigest(g.Generator(), digest[:], sig))

			bad := append([]byte(nil), sig...)
			bad[len(bad)-1] ^= 0x01
			assert.False(t, signer.VerifyDigest(pub, digest[:], bad))

			_, err = signer.SignDigest(big.NewInt(0), digest[:])
			assert.ErrorIs(t, err, ecc.ErrInvalidScalar)
		})
	}
}

func TestSecp256k1CrossEngineSignature(t *testing.T) {
	digest := sha256.Sum256([]byte("cross"))
	ladder := NewSecp256k1Ladder()
	fast := NewSecp256k1()

	d, err := ladder.NewScalar()
	require.NoError(t, err)
	pub, err := ladder.ScalarBaseMult(d)
	require.NoError(t, err)

	sig, err := ladder.SignDigest(d, digest[:])
	require.NoError(t, err)
	assert.True(t, fast.VerifyDigest(pub, digest[:], sig))
}

func TestWeierstrassWithoutSigner(t *testing.T) {
	g, err := NewWeierstrass(NewP256().Params())
	require.NoError(t, err)
	_, err = g.SignDigest(big.NewInt(5), make([]byte, 32))
	assert.ErrorIs(t, err, ecc.ErrUnsupported)
	assert.False(t, g.VerifyDigest(g.Generator(), make([]byte, 32), []byte{0x30}))

	_, err = NewWeierstrass(nil)
	assert.ErrorIs(t, err, ecc.ErrUnsupported)
}

func TestFromName(t *testing.T) {
	g, err := FromName(" P-256 ")
	require.NoError(t, err)
	assert.Equal(t, "p256", g.Name())

	_, err = FromName("curve448")
	assert.ErrorIs(t, err, ecc.ErrUnsupported)

	names := SupportedCurves()
	names[0] = "mutated"
	assert.Equal(t, "secp256k1-ladder", SupportedCurves()[0])
}

func TestSupportedCurvesLadderFirst(t *testing.T) {
	group, err := FromName(SupportedCurves()[0])
	require.NoError(t, err)
	assert.IsType(t, &Weierstrass{}, group)
	assert.Equal(t, "secp256k1", SupportedCurves()[len(SupportedCurves())-1])
}

func TestWeierstrassSmallCurve(t *testing.T) {
	params := weierstrass.NewParams(big.NewInt(0), big.NewInt(7), big.NewInt(10477)).
		WithGenerator("tiny", big.NewInt(3), big.NewInt(731), big.NewInt(10639))
	g, err := NewWeierstrass(params)
	require.NoError(t, err)
	assert.Equal(t, "tiny", g.Name())

	p, err := g.ScalarBaseMult(big.NewInt(12345))
	require.NoError(t, err)
	wp, ok := p.(*WeierstrassPoint)
	require.True(t, ok)
	assert.Equal(t, int64(8345), wp.Affine().X().Int64())
	assert.Equal(t, int64(9780), wp.Affine().Y().Int64())

	q, err := g.ParsePoint(p.Bytes())
	require.NoError(t, err)
	assert.True(t, p.Equal(q))

	noGen := weierstrass.NewParams(big.NewInt(0), big.NewInt(7), big.NewInt(10477))
	_, err = NewWeierstrass(noGen)
	assert.ErrorIs(t, err, ecc.ErrUnsupported)
}
