/*
Package clangover implements a timing side-channel key-recovery attack against Kyber512
decapsulation. Crafted ciphertexts make the decrypted message depend on a single secret
coefficient, and a statistical controller recovers that coefficient from the cycle-count
difference between a crafted and a reference ciphertext.

The attack engine is in package attack, the victims it measures are in package oracle, and
the Kyber primitives they rely on are in packages ring and kyber. The clangover command in
cmd/clangover wires them together with live rendering, YAML reports and Prometheus metrics.
*/
package clangover
