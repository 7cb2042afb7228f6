// Package media coordinates the image and audio generation subtasks. The two
// subtasks run concurrently, each with a bounded timeout, and each failure is
// absorbed into a nil URL: one subtask failing must never prevent the other's
// success or fail the overall request. Generated bytes are persisted through
// a content-addressed artifact store so identical generation inputs never
// regenerate.
package media
