// Package metadata reads the EXIF fields sweeper shows next to odd files.
//
// Only a bounded prefix of each file is read; both JPEG and NEF files keep
// their EXIF block near the start. Files without EXIF are not an error.
package metadata
