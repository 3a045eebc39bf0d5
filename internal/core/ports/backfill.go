package ports

// BackfillJob asks for audio features to be filled in for a stored track.
type BackfillJob struct {
	TrackID    string
	PreviewURL string
}

// BackfillQueue accepts feature backfill jobs. Submit must not block and
// reports whether the job was queued.
type BackfillQueue interface {
	Submit(job BackfillJob) bool
}
