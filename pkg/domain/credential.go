package domain

// maskKeep is how many characters of each end survive masking.
const maskKeep = 15

// MaskCredential returns a safe echo of a credential for result records and
// logs. Values longer than twice maskKeep keep only their ends.
func MaskCredential(credential string) string {
	if len(credential) <= 2*maskKeep {
		return credential
	}

	return credential[:maskKeep] + "..." + credential[len(credential)-maskKeep:]
}
