// labelsmith is a single-station label printer feed: it reads scans from a
// serial-attached barcode scanner, extracts the embedded identifier, and
// writes print-ready PNG labels to an output directory.
package main

func main() {
	Execute()
}
