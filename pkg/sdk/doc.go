// Package helix provides an in-process Go client for the Big 12 directory
// listings: member schools, venues, contacts, travel routes, weather
// stations and the awards inventory.
//
// Records come from a YAML seed file or from a Valkey/Redis store written
// by `helix seed`. Every query returns the matching records together with
// the "N of M" count pair shown next to each listing.
//
//	client, _ := helix.New(ctx, helix.WithSeedFile("seed/listings.yaml"))
//	page, _ := client.Listing("venues").
//	    Search("stadium").
//	    Where("sport", "Football").
//	    AtLeast("capacity", 50000).
//	    SortBy("capacity").Desc().
//	    Do(ctx)
//	fmt.Println(page.Summary) // "3 of 12"
//
// # Typed records
//
//	type Venue struct {
//	    ID       string  `helix:"id"`
//	    Name     string  `helix:"name"`
//	    Capacity int     `helix:"capacity"`
//	}
//
//	venues, _ := helix.Decode[Venue](page.Items)
package helix
