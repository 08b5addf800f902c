package pixelit

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bodgit/pixelit/codec"
	"github.com/pkg/errors"
)

// Anything bigger is unlikely to be a source image worth pixelating
const maxFileSize = 64 << (10 * 2)

type job struct {
	file, rel string
}

func isHidden(info os.FileInfo) bool {
	return info.Name()[0] == '.'
}

func (p *PixelIt) findImages(ctx context.Context, base, skip string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && isHidden(info) {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if info.Mode().IsDir() {
				// Don't feed our own output back in
				if file == skip {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || info.Size() > maxFileSize {
				return nil
			}

			if _, err := codec.FormatFromFilename(file); err != nil {
				return nil
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				return err
			}

			select {
			case out <- job{file: file, rel: rel}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (p *PixelIt) imageWorker(ctx context.Context, in <-chan job, dst string, c Config, format codec.Format) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			src, err := ioutil.ReadFile(j.file)
			if err != nil {
				errc <- err
				return
			}

			b, err := p.convert(src, c, format)
			if err != nil {
				p.logger.Printf("Skipping \"%s\": %v\n", j.file, err)
				continue
			}

			out := filepath.Join(dst, strings.TrimSuffix(j.rel, filepath.Ext(j.rel))+format.Extension())
			if err := os.MkdirAll(filepath.Dir(out), 0777); err != nil {
				errc <- err
				return
			}

			if err := ioutil.WriteFile(out, b, 0666); err != nil {
				errc <- err
				return
			}

			p.logger.Printf("Converted \"%s\" to \"%s\"\n", j.file, out)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan converts every image found under the src directory, writing the
// results to the same relative paths under dst with the extension of the
// chosen format. Files that cannot be decoded are logged and skipped.
func (p *PixelIt) Scan(src, dst string, c Config, format codec.Format) error {
	if !format.CanEncode() {
		return errors.Wrap(codec.ErrUnsupported, string(format))
	}

	base, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	info, err := os.Stat(base)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.Errorf("%s: not a directory", src)
	}

	out, err := filepath.Abs(dst)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	jobs, errc, err := p.findImages(ctx, base, out)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < runtime.NumCPU(); i++ {
		errc, err := p.imageWorker(ctx, jobs, out, c, format)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
