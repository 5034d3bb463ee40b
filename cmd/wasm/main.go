//go:build js && wasm

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"syscall/js"

	"github.com/smallyu/go-ecbasics/internal/crypto/curves"
	"github.com/smallyu/go-ecbasics/internal/protocol/dh"
	"github.com/smallyu/go-ecbasics/internal/protocol/keygen"
	"github.com/smallyu/go-ecbasics/internal/protocol/sign"
)

func main() {
	c := make(chan struct{})

	fmt.Println("go-ecbasics WASM initialized")

	js.Global().Set("GoECBasics", map[string]interface{}{
		"generateKey": js.FuncOf(GenerateKey),
		"sign":        js.FuncOf(Sign),
		"verify":      js.FuncOf(Verify),
		"encrypt":     js.FuncOf(Encrypt),
		"decrypt":     js.FuncOf(Decrypt),
		"curves":      js.FuncOf(Curves),
	})

	<-c
}

// All byte strings cross the boundary as hex. Errors are returned as
// strings prefixed with "error: ".

// GenerateKey(curve) returns {"private": hex, "public": hex}.
func GenerateKey(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (curve)"
	}
	group, err := curves.FromName(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	kp, err := keygen.Generate(group)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	defer kp.Destroy()

	resp, _ := json.Marshal(map[string]string{
		"private": kp.Private.Text(16),
		"public":  hex.EncodeToString(kp.Public.Bytes()),
	})
	return string(resp)
}

// Sign(curve, privateHex, messageHex) returns the DER signature as hex.
func Sign(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (curve, private, message)"
	}
	group, err := curves.FromName(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	priv, ok := new(big.Int).SetString(args[1].String(), 16)
	if !ok {
		return "error: invalid private key hex"
	}
	msg, err := hex.DecodeString(args[2].String())
	if err != nil {
		return fmt.Sprintf("error: invalid message hex: %v", err)
	}
	sig, err := sign.Sign(group, priv, msg)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return hex.EncodeToString(sig)
}

// Verify(curve, publicHex, messageHex, signatureHex) returns a bool.
func Verify(this js.Value, args []js.Value) interface{} {
	if len(args) != 4 {
		return "error: expected 4 arguments (curve, public, message, signature)"
	}
	group, err := curves.FromName(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	pubBytes, err1 := hex.DecodeString(args[1].String())
	msg, err2 := hex.DecodeString(args[2].String())
	sig, err3 := hex.DecodeString(args[3].String())
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	pub, err := group.ParsePoint(pubBytes)
	if err != nil {
		return false
	}
	return sign.Verify(group, pub, msg, sig)
}

// Encrypt(curve, publicHex, messageHex) returns the marshalled ciphertext.
func Encrypt(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (curve, public, message)"
	}
	group, err := curves.FromName(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	pubBytes, err := hex.DecodeString(args[1].String())
	if err != nil {
		return fmt.Sprintf("error: invalid public key hex: %v", err)
	}
	pub, err := group.ParsePoint(pubBytes)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	msg, err := hex.DecodeString(args[2].String())
	if err != nil {
		return fmt.Sprintf("error: invalid message hex: %v", err)
	}
	ct, err := dh.Encrypt(group, pub, msg)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	wire, err := ct.MarshalBinary()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return hex.EncodeToString(wire)
}

// Decrypt(curve, privateHex, ciphertextHex) returns the plaintext as hex.
func Decrypt(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (curve, private, ciphertext)"
	}
	group, err := curves.FromName(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	priv, ok := new(big.Int).SetString(args[1].String(), 16)
	if !ok {
		return "error: invalid private key hex"
	}
	wire, err := hex.DecodeString(args[2].String())
	if err != nil {
		return fmt.Sprintf("error: invalid ciphertext hex: %v", err)
	}
	pt, err := dh.DecryptBytes(group, priv, wire)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return hex.EncodeToString(pt)
}

// Curves returns the supported curve names as a JSON array.
func Curves(this js.Value, args []js.Value) interface{} {
	resp, _ := json.Marshal(curves.SupportedCurves())
	return string(resp)
}
