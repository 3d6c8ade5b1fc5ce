// Package gitctx reads context from the local git checkout: the current
// branch and the owner/repo named by the origin remote. The CLI uses it to
// fill in --owner, --repo and pull request heads the user did not pass.
package gitctx
