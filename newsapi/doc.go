// Package newsapi is a client for the publishing API: channels, sections
// and articles.
//
// Every request is signed with the HHMAC scheme (see package hhmac).
// Article uploads are sent as a single multipart body holding the article
// JSON, the metadata JSON and any bundled files (see package formdata).
//
//	client, err := newsapi.New(newsapi.Config{
//	    APIID:     os.Getenv("NEWSAPI_API_ID"),
//	    APISecret: os.Getenv("NEWSAPI_API_SECRET"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	article, err := client.CreateArticle(ctx, newsapi.CreateArticleInput{
//	    ChannelID: channelID,
//	    Article:   articleJSON,
//	    Files:     []formdata.File{{Name: "image.png", Path: "./image.png"}},
//	    Metadata:  newsapi.ArticleMetadata{IsPreview: newsapi.Bool(false)},
//	})
//
// # Errors
//
// Failures are reported by category and can be tested with errors.Is:
//
//   - ErrValidation: bad input, detected before any I/O.
//   - formdata.ErrFileAccess: a bundled file is missing or unreadable.
//   - formdata.ErrUndetectableContentType: a bundled file has no
//     recognisable type.
//   - hhmac.ErrInvalidSecret: the API secret is not valid base64 (from New).
//   - ErrRemote: the server answered with a non-2xx status or an error
//     envelope; use errors.As with *APIError for details.
//
// The client performs no retries.
package newsapi
