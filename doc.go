// Package chatkit is the Go client SDK for the SumerQA chat/RAG service.
//
// The package glues the REST client in client with the credential machinery
// in client/auth: a session store (in-memory or file-backed), an identity
// provider client for login/signup/renewal, and an http.RoundTripper that
// attaches the session's bearer token to every request, renews it once on a
// 401 and replays the failed request with the fresh credential.
//
// Example:
//
//	kit, _ := chatkit.New(&chatkit.Options{
//		BaseURL:     "https://qa.example.com",
//		SessionFile: filepath.Join(home, ".chatkit", "session.json"),
//	})
//	if _, err := kit.Auth.Login(ctx, email, password); err != nil { /* … */ }
//	answer, err := kit.API.Ask(ctx, &schema.AskRequest{ChatID: chatID, Query: query})
package chatkit
