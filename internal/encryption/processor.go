package encryption

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	pverrors "github.com/idelchi/pegvault/internal/errors"
	"github.com/idelchi/pegvault/internal/fileutil"
)

// Processor transforms files with a fixed peg and direction.
type Processor struct {
	peg      int
	mode     Mode
	parallel int
	buffers  *bufferPool
}

// NewProcessor returns a Processor. The peg is expected to be validated by the caller.
func NewProcessor(peg int, mode Mode, chunkSize, parallel int) *Processor {
	return &Processor{
		peg:      peg,
		mode:     mode,
		parallel: max(1, parallel),
		buffers:  newBufferPool(chunkSize),
	}
}

// ProcessFiles transforms every job on up to parallel workers.
// handle is called once per job, always from the same goroutine, so it may
// mutate shared state without locking. Failing jobs do not stop the others.
func (p *Processor) ProcessFiles(jobs []Job, handle func(Result)) (processed, errored int, totalSize int64) {
	results := make(chan Result, len(jobs))

	group := errgroup.Group{}
	group.SetLimit(p.parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for res := range results {
			if res.Error != nil {
				errored++
			} else {
				processed++

				totalSize += res.OutputSize
			}

			handle(res)
		}
	}()

	for _, job := range jobs {
		group.Go(func() error {
			size, err := p.ProcessFile(job.Input, job.Output)
			results <- Result{Job: job, OutputSize: size, Error: err}

			return nil
		})
	}

	_ = group.Wait() //nolint:errcheck // workers report through results

	close(results)

	<-done

	return processed, errored, totalSize
}

// ProcessFile transforms input into output. The output only appears once the
// whole input has been transformed; on failure no output file is left behind.
func (p *Processor) ProcessFile(input, output string) (size int64, err error) {
	inFile, err := os.Open(filepath.Clean(input))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w: %w", pverrors.ErrRead, err)
	}
	defer inFile.Close()

	tc, err := fileutil.NewTempContext(output)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w: %w", pverrors.ErrWrite, err)
	}

	defer tc.CleanupOnError(&err)

	buf := p.buffers.get()
	defer p.buffers.put(buf)

	if _, err = Transform(inFile, tc.TmpFile, p.peg, p.mode, *buf); err != nil {
		return 0, fmt.Errorf("transforming %q: %w", input, err)
	}

	if err = inFile.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w: %w", pverrors.ErrRead, err)
	}

	size, err = tc.Commit()
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w: %w", pverrors.ErrWrite, err)
	}

	return size, nil
}
