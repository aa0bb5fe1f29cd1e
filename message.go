package ephemeralmail

// Message is a normalized view of one email fetched from a provider.
// Messages are built fresh on every fetch and are never cached by the library.
type Message struct {
	From    string
	Subject string
	Body    string
}
