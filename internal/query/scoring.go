package query

import "math"

// idf computes the inverse document (frame) frequency of a term:
// log(total_frame_count / frames_occurring(term)).
func idf(totalFrames, framesOccurring int64) float64 {
	if framesOccurring == 0 || totalFrames == 0 {
		return 0
	}
	return math.Log(float64(totalFrames) / float64(framesOccurring))
}

// tfidf is one term's contribution to one frame's score: tf · idf · weight.
func tfidf(tf float64, idfValue, weight float64) float64 {
	return tf * idfValue * weight
}
