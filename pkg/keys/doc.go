// Package keys provisions the SSH keypair owned by each identity.
//
// Keys are generated in-process with golang.org/x/crypto/ssh and written in
// OpenSSH format to ~/.ssh/id_<algorithm>_<alias>. Generated keys carry no
// passphrase so that git and the health audit can use them unattended.
package keys
