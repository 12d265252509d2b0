// Package formdata builds the multipart/form-data bodies accepted by the
// publishing API.
//
// The API expects a fixed per-part header layout that differs from what
// mime/multipart writes: every part declares its Content-Type first, and
// the Content-Disposition line carries a size attribute with the exact
// payload length:
//
//	--<boundary>
//	Content-Type: image/png
//	Content-Disposition: form-data; filename="image.png"; name="file0"; size=1024
//
//	<payload>
//	--<boundary>--
//
// Bodies are fully materialized before they are returned, because the
// request signature covers every byte of the body. Either the whole body
// is produced or an error is returned; partial bodies are never exposed.
//
//	body, err := formdata.Bundle{
//	    Article:  articleJSON,
//	    Metadata: metadataJSON,
//	    Files:    []formdata.File{{Name: "image.png", Path: "./image.png"}},
//	}.Encode(ctx)
package formdata
