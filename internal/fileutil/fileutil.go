package fileutil

import "os"

// OwnerReadWrite is the file permission mode for report files written with
// -o, which may list internal endpoints (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for spec bundles and companion
// files that other tools and users must be able to read.
const ReadableByAll os.FileMode = 0o644
