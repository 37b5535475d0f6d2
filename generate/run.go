// Package generate implements program actions: batch processing of HTML
// documents (single file, directory tree or zip archive) and stylesheet
// generation for tokens given on command line.
package generate

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"twigwind/archive"
	"twigwind/common"
	"twigwind/config"
	"twigwind/css"
	"twigwind/document"
	"twigwind/state"
	"twigwind/utility"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to html", zap.Error(err))
		format = common.OutputFmtHtml
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	env.Verify = cmd.Bool("verify") || env.Cfg.Generator.Verify
	env.Theme = env.Cfg.Generator.BuildTheme()

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	env.CodePage = lookupEncoding(cmd.String("force-zip-cp"), "Forcefully converting all non UTF-8 file names in archives", log)
	// Old documents often have no encoding declaration at all
	env.Charset = lookupEncoding(cmd.String("force-charset"), "Forcefully decoding all documents", log)

	log.Info("Processing starting",
		zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format), zap.Stringer("run_id", env.RunID))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// lookupEncoding returns encoding for IANA character set name, nil when name
// is empty or unknown.
func lookupEncoding(name, msg string, log *zap.Logger) encoding.Encoding {
	if len(name) == 0 {
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", name), zap.Error(err))
		return nil
	}
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug(msg, zap.String("charset", n))
	return enc
}

// process handles the core generation logic independently of CLI framework.
// It determines the input type (directory, archive, or single file) and
// processes accordingly.
func process(ctx context.Context, src, dst string, format common.OutputFmt, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, format, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, filepath.ToSlash(tail), "", dst, format, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		if isDocumentFile(head, env.Cfg.Document.Extensions) && len(tail) == 0 {
			// we have document, it cannot have tail
			if err := processFile(ctx, head, filepath.Base(head), dst, format, log); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			}
			break
		}
		return fmt.Errorf("input was not recognized as HTML document (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding documents and archives and
// processes them.
func processDir(ctx context.Context, dir, dst string, format common.OutputFmt, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if info.IsDir() && path == dst && path != dir {
			// do not process our own results
			log.Debug("Skipping destination directory", zap.String("dir", path))
			return filepath.SkipDir
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst, format, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		if !isDocumentFile(path, env.Cfg.Document.Extensions) {
			log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
			return nil
		}

		count++

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processFile(ctx, path, src, dst, format, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processArchive walks all files inside archive, finds documents under
// "pathIn" and processes them.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, format common.OutputFmt, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	err = archive.Walk(ctx, path, pathIn, archive.Extensions(env.Cfg.Document.Extensions...), func(archive string, f *zip.File) error {
		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		pathInArchive := f.FileHeader.Name
		if env.CodePage != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := env.CodePage.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(env.CodePage)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		if err := processDocument(ctx, r, "", filepath.Join(pathOut, filepath.FromSlash(pathInArchive)), dst, format, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

func processFile(ctx context.Context, path, src, dst string, format common.OutputFmt, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return processDocument(ctx, file, path, src, dst, format, log)
}

// processDocument processes single HTML document. "origin" is the full path
// of the document on disk, empty when document comes from archive. "src" is
// part of the source path (always including file name) relative to the
// original path. When actual file was specified it will be just base file
// name without a path. When looking inside archive or directory it will be
// relative path inside archive or directory (including base file name).
// "dst" is the destination directory where the result should be written.
func processDocument(ctx context.Context, r io.Reader, origin, src, dst string, format common.OutputFmt, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string
	var rules int

	log.Info("Generation starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Generation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("generation panic: %v", r)
		} else if rerr == nil {
			log.Info("Generation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.Int("rules", rules))
		}
	}(time.Now())

	var source *bytes.Buffer
	if env.Rpt != nil {
		source = new(bytes.Buffer)
		r = io.TeeReader(r, source)
	}

	contentType := ""
	if env.Charset != nil {
		r = env.Charset.NewDecoder().Reader(r)
		contentType = "text/html; charset=utf-8"
	}

	page, err := document.Load(r, contentType, document.WithStyleID(env.Cfg.Generator.StyleID), document.WithLogger(log))
	if err != nil {
		return fmt.Errorf("unable to parse document (%s): %w", src, err)
	}

	g := env.NewGenerator()
	for _, el := range page.Elements() {
		g.Apply(el)
	}
	rules = g.Len()

	if unmatched := g.Unmatched(); len(unmatched) > 0 {
		log.Debug("Some classes did not produce rules", zap.String("document", src), zap.Strings("tokens", unmatched))
	}
	if env.Verify {
		verify(g, src, log)
	}

	values := newValues(config.OutputNameTemplateFieldName, src, page.Title(), format, env.RunID.String(), rules)
	outputName = buildOutputPath(values, src, dst, format, env)

	if len(origin) > 0 && sameFile(origin, outputName) {
		return fmt.Errorf("output file would overwrite source: %s", outputName)
	}
	if err := prepareOutput(outputName, env.Overwrite, log); err != nil {
		return err
	}

	switch format {
	case common.OutputFmtHtml:
		if rules > 0 {
			if err := g.Flush(page); err != nil {
				return fmt.Errorf("unable to inject stylesheet: %w", err)
			}
		}
		err = writeOutput(outputName, page.Render)
	case common.OutputFmtCss:
		err = writeOutput(outputName, func(w io.Writer) error {
			if rules == 0 {
				return nil
			}
			_, err := io.WriteString(w, g.CSS()+"\n")
			return err
		})
	}
	if err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store generation results for debugging
	if env.Rpt != nil {
		name := filepath.ToSlash(src)
		env.Rpt.StoreData("source/"+name, source.Bytes())
		env.Rpt.StoreText("generator/"+name+".txt", g.String())
		if err := env.Rpt.StoreCopy("result/"+name+format.Ext(), outputName); err != nil {
			log.Warn("Unable to store result in the report", zap.String("file", outputName), zap.Error(err))
		}
	}
	return nil
}

// verify parses generated stylesheet back and reports problems. It never
// fails the generation.
func verify(g *utility.Generator, src string, log *zap.Logger) int {
	warnings := css.NewParser(log).Verify([]byte(g.CSS()), src)
	for _, w := range warnings {
		log.Warn("Generated stylesheet problem", zap.String("document", src), zap.String("problem", w))
	}
	return len(warnings)
}

func sameFile(a, b string) bool {
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}

// prepareOutput checks if output file already exists and makes sure its
// directory is there.
func prepareOutput(outputName string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(outputName); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		return os.Remove(outputName)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

func writeOutput(outputName string, write func(io.Writer) error) (err error) {
	f, err := os.Create(outputName)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return write(f)
}
