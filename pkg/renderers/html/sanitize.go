package html

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	regionPolicyOnce sync.Once
	regionPolicy     *bluemonday.Policy
)

// sanitizeRegion strips anything the region template does not emit itself,
// so backend values can never smuggle markup into the page.
func sanitizeRegion(raw []byte) []byte {
	return regionSanitizer().SanitizeBytes(raw)
}

func regionSanitizer() *bluemonday.Policy {
	regionPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("section", "h2", "p", "dl", "dt", "dd", "code", "ul", "li")
		policy.AllowAttrs("class", "id").Globally()
		policy.AllowAttrs("role", "aria-live").OnElements("section")
		policy.AllowDataAttributes()
		regionPolicy = policy
	})
	return regionPolicy
}
