// Package domain contains the Task entity and the partial update applied
// to it. It has no knowledge of HTTP or storage.
package domain
