package testit

import (
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"
)

// Query strings only ever carry allow-listed names, in allow-list order.
func TestPropertyQueryRespectsAllowList(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	allowed := autoTestListParams
	candidates := append(slices.Clone(allowed), "bogus", "projectid", "TAKE", "apiVersion", "")

	client, err := NewClient("http://localhost", "token", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	properties.Property("emitted names are a subset of the allow-list", prop.ForAll(
		func(picks []int, value string) bool {
			params := Params{}
			for _, i := range picks {
				params[candidates[i]] = value
			}

			query, err := client.encodeQuery("GetAllAutoTests", allowed, params)
			if err != nil {
				return false
			}
			if query == "" {
				return true
			}

			last := -1
			for _, pair := range strings.Split(query, "&") {
				name, _, _ := strings.Cut(pair, "=")
				pos := slices.Index(allowed, name)
				if pos < 0 || pos <= last {
					return false
				}
				last = pos
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(candidates)-1)),
		gen.AlphaString(),
	))

	properties.Property("allow-listed values round trip", prop.ForAll(
		func(value string) bool {
			query, err := client.encodeQuery("GetAllAutoTests", allowed, Params{"projectId": value, "bogus": "x"})
			if err != nil {
				return false
			}
			parsed, err := url.ParseQuery(query)
			if err != nil {
				return false
			}
			_, hasBogus := parsed["bogus"]
			return parsed.Get("projectId") == value && !hasBogus
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// Strict clients reject exactly the names outside the allow-list.
func TestPropertyStrictParams(t *testing.T) {
	properties := gopter.NewProperties(nil)

	allowed := []string{"isDeleted", "projectName"}
	client, err := NewClient("http://localhost", "token", zerolog.Nop(), WithStrictParams())
	if err != nil {
		t.Fatal(err)
	}

	properties.Property("unknown name fails, known name passes", prop.ForAll(
		func(name string) bool {
			_, err := client.encodeQuery("GetAllProjects", allowed, Params{name: "v"})
			return (err == nil) == slices.Contains(allowed, name)
		},
		gen.OneConstOf("isDeleted", "projectName", "IsDeleted", "Take", "x"),
	))

	properties.TestingRun(t)
}

// Exactly one trailing slash is removed from the base URL.
func TestPropertyBaseURLTrailingSlash(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("one slash stripped", prop.ForAll(
		func(host string, slashes int) bool {
			base := "https://" + host + ".example"
			client, err := NewClient(base+strings.Repeat("/", slashes), "token", zerolog.Nop())
			if err != nil {
				return false
			}
			want := base + strings.Repeat("/", max(slashes-1, 0))
			return client.BaseURL() == want
		},
		gen.Identifier(),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}
