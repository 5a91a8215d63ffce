package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultKeywords is the crypto/web3 keyword set used when the config file
// does not override it.
var DefaultKeywords = []string{
	"crypto", "blockchain", "web3", "bitcoin", "ethereum",
	"defi", "solidity", "smart contract", "nft", "dao",
	"crypto engineer", "blockchain engineer",
}

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}
