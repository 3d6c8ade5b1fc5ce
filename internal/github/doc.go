// Package github is a minimal client for the part of the GitHub REST API
// needed to create branches, commit a file, and open pull requests.
//
// The [Client] has two layers. The verb layer ([Client.Get], [Client.Post],
// [Client.Patch]) attaches authentication headers and returns the raw status
// and body for any HTTP status; only a failure to obtain a response is an
// error. The domain methods build paths and JSON bodies, apply the success
// check, and extract the one field they care about.
//
// [Client.CommitFile] chains six domain calls to commit a single file:
//
//	branch SHA -> tree SHA -> blob -> tree -> commit -> update ref
//
// Nothing is rolled back when a later step fails. Objects created by earlier
// steps stay unreferenced in the repository and the partial chain is returned
// to the caller.
//
// All failures are [*Error] values tagged with a [Kind]. Use [StatusCode] or
// the Is* helpers to inspect the HTTP status they carry.
package github
