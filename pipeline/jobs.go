/*
DESCRIPTION
  jobs.go defines the ConvertJob and WriteJob types that own frame
  buffers as they move between pipeline stages.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pipeline

// ConvertJob carries one BGRA frame from the decoder to a converter
// worker. The worker is the sole owner of BGRA once it dequeues the
// job, and must not retain it after conversion completes.
type ConvertJob struct {
	FrameNumber uint64
	BGRA        []byte
}

// WriteJob carries one pal8 frame from a converter worker to the
// writer. The writer is the sole owner of Pal8 once it pops the job
// from the write queue.
type WriteJob struct {
	FrameNumber uint64
	Pal8        []byte
}
