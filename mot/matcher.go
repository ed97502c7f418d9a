package mot

// noTrack marks detection which has no eligible track
const noTrack = -1

// matchDetections associates detections with tracks using greedy first-fit.
// Detections are processed in given order; for each one the first track (in given order)
// with the same label and IoU >= iouThreshold which has not been consumed yet is taken.
// Returns slice where i-th element is index of track assigned to i-th detection or noTrack.
func matchDetections(tracks []TrackedObject, detections []Detection, iouThreshold float64) []int {
	assignment := make([]int, len(detections))
	// Prevent double update of tracks
	consumed := make([]bool, len(tracks))
	for i, detection := range detections {
		assignment[i] = noTrack
		for j, track := range tracks {
			if consumed[j] {
				continue
			}
			if track.Label != detection.Label {
				continue
			}
			if IoU(track.Box, detection.Box) >= iouThreshold {
				assignment[i] = j
				consumed[j] = true
				break
			}
		}
	}
	return assignment
}
