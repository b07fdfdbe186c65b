// Package container defines the on-disk layout shroud uses to hide a file,
// and reads and writes the two archive layers it is made of.
//
// # Layout
//
// A container is an uncompressed tar file named <id>.tar with two members:
//
//	<inner-id>.zip          password-encrypted inner archive
//	<original-name>.txt     zero-length decoy
//
// The inner archive is a WinZip AES-256 zip with two encrypted entries:
//
//	<id>                    the original file's bytes
//	<metadata-id>.ciper     the original file name as UTF-8 text
//
// Every id is a 20 character alphanumeric token from the identifier package.
// The decoy only pads the listing. It carries no data and proves nothing.
//
// # Names
//
// Every member name written or read goes through ValidateEntryName, which
// accepts bare file names only. Extraction therefore cannot escape the
// target directory.
package container
