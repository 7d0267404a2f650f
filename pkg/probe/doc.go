// Package probe checks whether GitHub accepts an identity's SSH key.
//
// Two probers implement types.Prober. CommandProber runs the system ssh
// client against the identity's host alias, exercising the user's real SSH
// configuration. NativeProber performs the handshake in-process with
// golang.org/x/crypto/ssh using the key and host named by the identity's
// config block. Both are non-interactive, bounded by the target's timeout and
// never retry.
package probe
