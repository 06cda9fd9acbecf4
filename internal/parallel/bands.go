package parallel

// Band is a half-open range of raster rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows divides height rows into at most parts contiguous bands of
// near-equal size. Earlier bands take the remainder rows.
// It returns nil when height <= 0.
func SplitRows(height, parts int) []Band {
	if height <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > height {
		parts = height
	}

	bands := make([]Band, parts)
	size, rem := height/parts, height%parts
	y := 0
	for i := range bands {
		n := size
		if i < rem {
			n++
		}
		bands[i] = Band{Y0: y, Y1: y + n}
		y += n
	}
	return bands
}

// ForEachBand splits height rows into bands and runs fn for each band on
// the pool, returning once all bands are done. Each worker receives about
// bandsPerWorker bands so stealing can even out uneven band costs.
func (p *WorkerPool) ForEachBand(height, bandsPerWorker int, fn func(Band)) {
	if bandsPerWorker <= 0 {
		bandsPerWorker = 1
	}
	bands := SplitRows(height, p.workers*bandsPerWorker)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	p.ExecuteAll(work)
}
