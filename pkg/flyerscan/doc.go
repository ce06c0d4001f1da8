// Package flyerscan provides an event extraction engine that turns OCR text
// from event flyers into structured event records.
//
// Quick start:
//
//	fs, err := flyerscan.New(flyerscan.WithModelDir("models/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer fs.Close()
//
//	event := fs.Extract("SUMMER JAZZ NIGHT\nJune 14, 2026 at 7:00 PM\nRiverside Hall")
//	fmt.Println(*event.Title, *event.Date) // Summer Jazz Night June 14, 2026
//
// The Extractor is safe for concurrent use. Create once, reuse across
// requests. See the README for full documentation.
package flyerscan
