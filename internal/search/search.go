// Package search finds byte patterns in files through window readers.
//
// The file is split into shards that are scanned in parallel. A Reader is
// single threaded, so every shard gets its own.
package search

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/hexkit/window"
)

const (
	// DefaultShardSize is the span of file each goroutine scans.
	DefaultShardSize = 64 << 20
	// MaxPatternLen bounds the pattern so a scan buffer stays small.
	MaxPatternLen = 64 << 10

	chunkSize = 1 << 20
)

// ErrEmptyPattern is returned for a zero-length pattern.
var ErrEmptyPattern = errors.New("search: empty pattern")

// Options tunes Find.
type Options struct {
	// Jobs is the number of shards scanned at once; 0 means GOMAXPROCS.
	Jobs int
	// Limit stops after this many matches; 0 means no limit.
	Limit int
	// ShardSize is the span of file per goroutine; 0 means DefaultShardSize.
	ShardSize int64
	// Reader configures the per-shard readers.
	Reader window.Options
}

// ParsePattern converts s into the bytes to search for. With isHex, s is
// hex digits with optional whitespace and an optional 0x prefix.
func ParsePattern(s string, isHex bool) ([]byte, error) {
	if !isHex {
		if s == "" {
			return nil, ErrEmptyPattern
		}
		return []byte(s), nil
	}
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, ErrEmptyPattern
	}
	p, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("search: invalid hex pattern: %w", err)
	}
	return p, nil
}

// Find returns the offsets of every occurrence of pattern in the file at
// path, in ascending order. Overlapping occurrences are all reported.
func Find(ctx context.Context, path string, pattern []byte, opts Options) ([]int64, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	if len(pattern) > MaxPatternLen {
		return nil, fmt.Errorf("search: pattern of %d bytes exceeds %d", len(pattern), MaxPatternLen)
	}
	shardSize := opts.ShardSize
	if shardSize <= 0 {
		shardSize = DefaultShardSize
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	probe := window.New(opts.Reader)
	size, err := probe.Open(path)
	if err != nil {
		return nil, err
	}
	if err := probe.Close(); err != nil {
		return nil, err
	}
	if size < int64(len(pattern)) {
		return nil, nil
	}

	shards := int((size + shardSize - 1) / shardSize)
	found := make([][]int64, shards)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range shards {
		if gctx.Err() != nil {
			break
		}
		lo := int64(i) * shardSize
		hi := min(lo+shardSize, size)
		g.Go(func() error {
			r := window.New(opts.Reader)
			if _, err := r.Open(path); err != nil {
				return err
			}
			defer r.Close()

			hits, err := scan(gctx, r, pattern, lo, hi, opts.Limit)
			if err != nil {
				return fmt.Errorf("shard [%d,%d): %w", lo, hi, err)
			}
			found[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []int64
	for _, hits := range found {
		out = append(out, hits...)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			return out[:opts.Limit], nil
		}
	}
	return out, nil
}

// scan reports matches that start in [lo, hi). Reads run past hi by up to
// len(pattern)-1 bytes so matches straddling the shard end are seen.
func scan(ctx context.Context, r *window.Reader, pattern []byte, lo, hi int64, limit int) ([]int64, error) {
	buf := make([]byte, chunkSize+len(pattern)-1)
	var hits []int64
	for pos := lo; pos < hi; pos += chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.ReadRangeInto(buf, pos)
		if err != nil {
			return nil, err
		}
		data := buf[:n]
		last := min(pos+chunkSize, hi) - pos

		for i := 0; ; {
			j := bytes.Index(data[i:], pattern)
			if j < 0 || int64(i+j) >= last {
				break
			}
			hits = append(hits, pos+int64(i+j))
			if limit > 0 && len(hits) >= limit {
				return hits, nil
			}
			i += j + 1
		}
	}
	return hits, nil
}
