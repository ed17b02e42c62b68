// Package fakeapi is an in-memory stand-in for the Nudocs public API,
// served over httptest for the client and CLI tests.
//
// It implements the five document endpoints under /api/public/documents,
// checks the bearer token on every request, and records what it received
// so tests can assert on uploads and export requests.
//
//	srv := fakeapi.New(t, "test-key")
//	client, _ := clientcli.New(&clientcli.Config{
//		BaseURL:     srv.URL,
//		Credentials: clientcli.StaticKey("test-key"),
//	})
package fakeapi
