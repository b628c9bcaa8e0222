// Package license finds and downloads license files inside GitHub
// repositories.
//
// A [Locator] visits each repository page, collects anchors whose href looks
// like a license file (LICENSE, COPYING, COPYRIGHT, LICENCE, with an optional
// extension), rewrites each href to the raw content host, and fetches it.
// Bodies that contain "<html" are rejected because GitHub serves rendered
// error and redirect pages with status 200.
//
// Work is pulled through an [Iterator]: nothing is fetched until the first
// call to [Iterator.Next], and each call performs at most as many license
// fetches as it takes to find the next accepted body.
//
//	loc, err := license.NewLocator(client, license.Options{})
//	if err != nil {
//	    return err
//	}
//	it := loc.Locate(repos, "/tmp", "requests")
//	for it.Next(ctx) {
//	    res := it.Result()
//	    fmt.Println(res.SourceURL, res.Path)
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
//
// Accepted bodies are written to outputFolder/packageName, then
// packageName_1, packageName_2 and so on, when both are set.
package license
