// Package testit provides a client for the TestIT test management REST API.
//
// The client covers the v2 endpoints for autotests, configurations,
// parameters, projects, sections, test plans, test results, test runs,
// test suites and work items. Payloads are passed through as JSON: the
// package does not model TestIT entities, it builds the request (path,
// allow-listed query parameters, JSON or multipart body), authenticates it
// with the API secret key and returns what the server answered.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := testit.NewClient(
//		"https://testit.example.com",
//		"your-secret-key",
//		logger,
//		testit.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.GetAllAutoTests(ctx, testit.Params{
//		"projectId": projectID,
//		"Take":      10,
//	})
//	if err != nil {
//		log.Fatal(err) // invalid request or transport failure
//	}
//	if err := resp.Err(); err != nil {
//		log.Fatal(err) // 4xx/5xx from TestIT
//	}
//	autotests, _ := resp.Items()
//
// # Request bodies
//
// Create and update endpoints take a SingleBody, bulk endpoints a BulkBody.
// Both are built from any JSON-serialisable value and checked for shape
// when constructed:
//
//	body, err := testit.NewSingleBody(map[string]any{"name": "Smoke", "projectId": projectID})
//
// Uploads take a File, either FilePath (opened and closed around the
// request) or FileReader.
//
// # Query parameters
//
// Each endpoint forwards only the parameter names it accepts, in a fixed
// order. Unknown names are dropped and logged at debug level unless the
// client was built WithStrictParams, in which case they fail with a
// *ParamError wrapping ErrUnknownParameter.
//
// # Error Handling
//
// Errors returned by client methods are either precondition failures,
// detected before anything is sent (ErrInvalidBody, ErrFileNotFound,
// ErrInvalidFile, ErrUnknownParameter, ErrUnsupportedValue,
// ErrUnsupportedMethod), or transport failures. A 4xx/5xx answer is not an
// error at that level; it is reported by Response.Err as an *APIError:
//
//	var apiErr *testit.APIError
//	if errors.As(resp.Err(), &apiErr) && apiErr.IsNotFound() {
//		// Handle missing entity
//	}
package testit
