// Package httpsession provides the HTTP plumbing shared by provider backends.
//
// A Session is one provider login: an http.Client with its own cookie jar, an
// optional bearer token and a base URL. Responses outside the 2xx range come
// back as *StatusError and network failures as *NetworkError; CreationError
// and FetchError translate both into the ephemeralmail error taxonomy.
//
// A typical form-based flow scrapes an anti-forgery token first:
//
//	s, err := httpsession.New(httpsession.WithBaseURL("https://mail.example"))
//	if err != nil {
//	    return nil, err
//	}
//	page, err := s.GetText(ctx, "/", nil)
//	if err != nil {
//	    return nil, httpsession.CreationError(err, providerType)
//	}
//	token, err := httpsession.ExtractToken(page, `CSRF="`, `"`)
//	if err != nil {
//	    return nil, httpsession.CreationError(err, providerType)
//	}
//
// Sessions carry mutable state (cookies, token) and are meant to be owned by
// a single ephemeralmail.Inbox, which serializes their use.
package httpsession
