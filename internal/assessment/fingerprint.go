package assessment

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Fingerprint computes the cache/idempotence key of an input. Set-valued
// fields are sorted before serialization so selection order never changes the
// digest; struct field order fixes the key order.
func Fingerprint(in AssessmentInput) (string, error) {
	normalized := in
	normalized.DataAvailability = sortedCopy(in.DataAvailability)
	normalized.MainBusinessChallenge = sortedCopy(in.MainBusinessChallenge)
	normalized.PriorityArea = sortedCopy(in.PriorityArea)

	raw, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
