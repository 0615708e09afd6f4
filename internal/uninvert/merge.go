package uninvert

import (
	"fmt"
	"fts/internal/common"
	"fts/internal/metrics"
	"fts/internal/postings"
	"fts/internal/postingserr"
	"os"
	"path/filepath"
)

// mergeTwo performs a two-way streaming merge of two sorted, chunk-format
// files into a new sorted chunk file at outPath. Memory footprint is
// bounded by the one record currently held from each side; this never
// loads a whole chunk into memory.
func mergeTwo(aPath, bPath, outPath string, kind postings.WeightKind) error {
	af, ar, err := openChunkReader(aPath)
	if err != nil {
		return err
	}
	defer af.Close()
	bf, br, err := openChunkReader(bPath)
	if err != nil {
		return err
	}
	defer bf.Close()

	out, err := newBufferedChunkWriter(outPath)
	if err != nil {
		return err
	}

	aRec, aOk, err := readChunkRecord(ar, kind)
	if err != nil {
		out.close()
		return err
	}
	bRec, bOk, err := readChunkRecord(br, kind)
	if err != nil {
		out.close()
		return err
	}

	for aOk && bOk {
		switch {
		case aRec.PrimaryKey() < bRec.PrimaryKey():
			if err := out.writeRecord(aRec, kind); err != nil {
				out.close()
				return err
			}
			aRec, aOk, err = readChunkRecord(ar, kind)
		case aRec.PrimaryKey() > bRec.PrimaryKey():
			if err := out.writeRecord(bRec, kind); err != nil {
				out.close()
				return err
			}
			bRec, bOk, err = readChunkRecord(br, kind)
		default:
			aRec.MergeWith(bRec)
			if err := out.writeRecord(aRec, kind); err != nil {
				out.close()
				return err
			}
			aRec, aOk, err = readChunkRecord(ar, kind)
			if err == nil {
				bRec, bOk, err = readChunkRecord(br, kind)
			}
		}
		if err != nil {
			out.close()
			return err
		}
	}
	for aOk {
		if err := out.writeRecord(aRec, kind); err != nil {
			out.close()
			return err
		}
		aRec, aOk, err = readChunkRecord(ar, kind)
		if err != nil {
			out.close()
			return err
		}
	}
	for bOk {
		if err := out.writeRecord(bRec, kind); err != nil {
			out.close()
			return err
		}
		bRec, bOk, err = readChunkRecord(br, kind)
		if err != nil {
			out.close()
			return err
		}
	}
	return out.close()
}

// mergeAll repeatedly merges pairs of chunk files until a single chunk
// survives, per the round-based reduction in the uninversion design.
// Merging is serial: I/O, not CPU, dominates this pass. Merged-away
// inputs are deleted immediately so a crash mid-merge leaves at most one
// extra generation of chunk files on disk rather than all of them.
func mergeAll(dir string, chunks []string, kind postings.WeightKind, m *metrics.Metrics) (string, error) {
	if len(chunks) == 0 {
		return "", postingserr.NewCorrupt("uninvert: no chunk files to merge")
	}
	round := 0
	for len(chunks) > 1 {
		var next []string
		for i := 0; i+1 < len(chunks); i += 2 {
			out := filepath.Join(dir, fmt.Sprintf("merge-%03d-%04d", round, i/2))
			if err := mergeTwo(chunks[i], chunks[i+1], out, kind); err != nil {
				return "", err
			}
			os.Remove(chunks[i])
			os.Remove(chunks[i+1])
			next = append(next, out)
			if m != nil {
				m.ChunksMergedTotal.Inc()
			}
		}
		if len(chunks)%2 == 1 {
			next = append(next, chunks[len(chunks)-1])
		}
		common.DINFO("uninvert: merge round %d produced %d chunks", round, len(next))
		chunks = next
		round++
	}
	return chunks[0], nil
}

// CompressPass rewrites the single surviving chunk as a dense postings
// file: primary-key gaps are filled with empty placeholder records by
// postings.Writer so the offset table covers every key in [0, numKeys).
// Once the postings file is written, the chunk file is deleted.
func CompressPass(chunkPath, stem string, numKeys uint64, kind postings.WeightKind) error {
	f, r, err := openChunkReader(chunkPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := postings.NewWriter(stem, numKeys, kind, common.BlockSizeHint(stem))
	if err != nil {
		return err
	}
	for {
		rec, ok, err := readChunkRecord(r, kind)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	os.Remove(chunkPath)
	return nil
}
