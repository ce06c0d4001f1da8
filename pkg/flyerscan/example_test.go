package flyerscan_test

import (
	"fmt"
	"log"

	"github.com/crimson-sun/flyerscan/pkg/flyerscan"
)

func Example() {
	fs, err := flyerscan.New(flyerscan.WithoutNER())
	if err != nil {
		log.Fatal(err)
	}
	defer fs.Close()

	event := fs.Extract("SUMMER JAZZ FESTIVAL\nJune 14, 2026 at 7:00 PM\nwww.summerjazz.com")

	fmt.Printf("Title: %s\n", *event.Title)
	fmt.Printf("Date: %s, Time: %s\n", *event.Date, *event.Time)
	fmt.Printf("Category: %s\n", *event.Category)
	// Output:
	// Title: Summer Jazz Festival
	// Date: June 14, 2026, Time: 7:00 PM
	// Category: Concert / Music
}
