// Package catalog ships the request body templates of the TestIT v2 API.
//
// Templates are reference data: the client never validates payloads
// against them. They are parsed once from an embedded YAML document and
// never change afterwards, so every function here is safe for concurrent use.
//
//	t, ok := catalog.Lookup("WorkItemPostModel")
//	if ok {
//		fmt.Println(t.Enums()["priority"]) // [Lowest Low Medium High Highest]
//	}
package catalog
