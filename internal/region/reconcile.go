package region

import "sort"

// Result describes how an edited region list maps onto the previously
// persisted set.
type Result struct {
	// Regions is the final set to persist. OrderIndex values are a
	// permutation of 0..n-1, in the order the user arranged them.
	Regions []Region

	// IDMap maps draft ids to the stable ids they were assigned.
	IDMap map[string]string

	// Deleted lists stable ids that were present before the edit but are
	// no longer part of the region set.
	Deleted []string
}

// Reconcile computes a full diff of the edited region list against the
// previously loaded set: existing ids are updated in place, drafts are
// assigned stable ids from nextID, and ids missing from the edited list
// are deleted. Interactive edits never re-compact order indexes, so the
// edited list may carry gaps; reconciliation renumbers them to 0..n-1.
func Reconcile(previous, edited []Region, nextID func() string) Result {
	res := Result{
		Regions: make([]Region, 0, len(edited)),
		IDMap:   make(map[string]string),
	}

	ordered := make([]Region, len(edited))
	copy(ordered, edited)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	kept := make(map[string]bool, len(ordered))
	for i, r := range ordered {
		if r.IsDraft() {
			stable := nextID()
			res.IDMap[r.ID] = stable
			r.ID = stable
		}
		r.OrderIndex = i
		kept[r.ID] = true
		res.Regions = append(res.Regions, r)
	}

	for _, p := range previous {
		if !kept[p.ID] {
			res.Deleted = append(res.Deleted, p.ID)
		}
	}
	return res
}

// RemapPhotos rewrites photo ownership after a reconcile: photos attached
// to a promoted draft follow it to its stable id, and photos belonging to
// deleted regions are dropped.
func RemapPhotos(photos []Photo, res Result) []Photo {
	deleted := make(map[string]bool, len(res.Deleted))
	for _, id := range res.Deleted {
		deleted[id] = true
	}

	out := make([]Photo, 0, len(photos))
	for _, p := range photos {
		if stable, ok := res.IDMap[p.RegionID]; ok {
			p.RegionID = stable
		}
		if deleted[p.RegionID] {
			continue
		}
		out = append(out, p)
	}
	return out
}
