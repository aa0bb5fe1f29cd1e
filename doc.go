// Package ephemeralmail creates disposable email inboxes on third-party
// temporary email services and reads their messages through one uniform
// Inbox and Message model.
//
// Each service is a Provider. The built-in providers (Mail.tm, Muellmail,
// FakeMail.net, TempMail.lol) describe which domains they serve; the web flow
// behind them is a Backend supplied with WithBackend. The httpsession package
// has the pieces most backends need.
//
// Basic usage:
//
//	client, err := ephemeralmail.New(
//	    ephemeralmail.WithBackend(ephemeralmail.ProviderMuellmail, backend),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create an inbox on a specific domain
//	inbox, err := client.CreateInbox(ctx,
//	    ephemeralmail.WithDomain(ephemeralmail.DomainRamenMailDe),
//	    ephemeralmail.WithName("test"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	messages, err := inbox.FetchMessages(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, m := range messages {
//	    fmt.Println("From:", m.From)
//	}
package ephemeralmail
