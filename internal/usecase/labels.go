package usecase

import "EvalPull/internal/domain/models"

// LabelWindow derives a directional label per observation from consecutive
// price differences. The window must be ordered newest first, the way
// ObservationStore.LatestWindow returns it.
//
// For each observation the neighbor is the next-older row: diff = older price
// minus current price. Direction is 1 if diff > 0, 0 if diff < 0, and
// undefined when the prices are equal or there is no older neighbor. Ties and
// the oldest row are excluded from joins rather than coerced to a class;
// defaulting would bias accuracy measurement.
func LabelWindow(window []models.RawObservation) []models.Label {
	labels := make([]models.Label, 0, len(window))
	for i, obs := range window {
		dir := models.DirectionUndefined
		if i+1 < len(window) {
			diff := window[i+1].Price - obs.Price
			switch {
			case diff > 0:
				dir = models.DirectionBuy
			case diff < 0:
				dir = models.DirectionSell
			}
		}
		labels = append(labels, models.Label{
			ID:               obs.ID,
			Asset:            obs.Asset,
			ScrapedTimestamp: obs.ScrapedTimestamp,
			Direction:        dir,
		})
	}
	return labels
}

// LabelIDs returns the observation ids covered by the label window,
// including undefined entries. Prediction loading filters on this set.
func LabelIDs(labels []models.Label) []int64 {
	ids := make([]int64, 0, len(labels))
	for _, l := range labels {
		ids = append(ids, l.ID)
	}
	return ids
}
