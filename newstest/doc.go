// Package newstest provides an in-process fake of the publishing API for
// tests.
//
// The server runs over TLS with a self-signed certificate, verifies the
// HHMAC Authorization header of every request, parses article uploads
// strictly (part order, header order, size attributes) and keeps channels,
// sections and articles in memory. Every request is recorded for later
// inspection.
//
//	srv := newstest.NewServer(t)
//	client, err := newsapi.New(newsapi.Config{
//	    APIID:              srv.APIID(),
//	    APISecret:          srv.APISecret(),
//	    Host:               srv.Host(),
//	    Port:               srv.Port(),
//	    InsecureSkipVerify: true,
//	})
package newstest
