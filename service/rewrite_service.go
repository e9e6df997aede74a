package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/unclass/domain"
	"github.com/ludo-technologies/unclass/internal/config"
	"github.com/ludo-technologies/unclass/internal/parser"
	"github.com/ludo-technologies/unclass/internal/printer"
	"github.com/ludo-technologies/unclass/internal/rewriter"
	"github.com/ludo-technologies/unclass/internal/version"
	"github.com/ludo-technologies/unclass/internal/walker"
)

// RewriteServiceImpl implements the RewriteService interface
type RewriteServiceImpl struct {
	executor *ParallelExecutorImpl
	progress domain.ProgressManager
}

// NewRewriteService creates a rewrite service with default concurrency
func NewRewriteService() *RewriteServiceImpl {
	return &RewriteServiceImpl{
		executor: NewParallelExecutor(),
		progress: &NoOpProgressManager{},
	}
}

// NewRewriteServiceWithConfig creates a rewrite service from configuration
func NewRewriteServiceWithConfig(cfg *config.PerformanceConfig, pm domain.ProgressManager) *RewriteServiceImpl {
	if pm == nil {
		pm = &NoOpProgressManager{}
	}
	return &RewriteServiceImpl{
		executor: NewParallelExecutorWithProgress(cfg, pm),
		progress: pm,
	}
}

// rewriteFileTask adapts one file rewrite to the parallel executor
type rewriteFileTask struct {
	service  *RewriteServiceImpl
	filePath string
	req      domain.RewriteRequest
	result   *domain.FileRewrite
}

func (t *rewriteFileTask) Name() string    { return t.filePath }
func (t *rewriteFileTask) IsEnabled() bool { return true }

func (t *rewriteFileTask) Execute(ctx context.Context) (interface{}, error) {
	result, err := t.service.RewriteFile(ctx, t.filePath, t.req)
	if err != nil {
		return nil, err
	}
	t.result = result
	return result, nil
}

// Rewrite processes every file in the request. req.Paths must already
// be concrete file paths; directory expansion is the caller's concern.
// A failure in one file is reported in the response and never aborts
// the batch.
func (s *RewriteServiceImpl) Rewrite(ctx context.Context, req domain.RewriteRequest) (*domain.RewriteResponse, error) {
	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no input files", nil)
	}

	tasks := make([]domain.ExecutableTask, 0, len(req.Paths))
	fileTasks := make([]*rewriteFileTask, 0, len(req.Paths))
	for _, path := range req.Paths {
		task := &rewriteFileTask{service: s, filePath: path, req: req}
		tasks = append(tasks, task)
		fileTasks = append(fileTasks, task)
	}

	execErr := s.executor.Execute(ctx, tasks)

	response := &domain.RewriteResponse{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}

	for _, task := range fileTasks {
		if task.result == nil {
			continue
		}
		response.Files = append(response.Files, *task.result)
		response.Summary.TotalFiles++
		if task.result.Changed {
			response.Summary.FilesChanged++
		}
		for _, class := range task.result.Classes {
			response.Summary.ClassesRewritten++
			switch class.Shape {
			case domain.ShapeDirectFactory:
				response.Summary.DirectFactories++
			case domain.ShapeWrappedFactory:
				response.Summary.WrappedFactories++
			}
		}
	}

	if aggErr, ok := execErr.(*AggregatedError); ok {
		for _, taskErr := range aggErr.Errors {
			response.Errors = append(response.Errors, taskErr.Error())
			response.Summary.FilesErrored++
			response.Summary.TotalFiles++
		}
	} else if execErr != nil {
		return nil, domain.NewRewriteError("rewrite batch failed", execErr)
	}

	if err := s.writeResults(response, req); err != nil {
		return nil, err
	}

	return response, nil
}

// RewriteFile processes a single JavaScript/TypeScript file
func (s *RewriteServiceImpl) RewriteFile(ctx context.Context, filePath string, req domain.RewriteRequest) (*domain.FileRewrite, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	source, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewFileNotFoundError(filePath, err)
		}
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to read %s", filePath), err)
	}

	program, err := parser.ParseForLanguage(filePath, source)
	if err != nil {
		return nil, domain.NewParseError(filePath, err)
	}

	opts := rewriter.Options{
		DealiasProps:              req.DealiasProps,
		CollapseConstructorAccess: req.CollapseConstructorAccess,
	}
	classes := rewriteProgram(program, walker.Default(), opts)

	result := &domain.FileRewrite{
		FilePath: filePath,
		Classes:  classes,
		Changed:  len(classes) > 0,
	}
	if result.Changed {
		result.Output = printer.Print(program)
	}
	return result, nil
}

// rewriteProgram runs the core rewrite over every candidate variable
// declaration in the program, nested statement bodies included, and
// substitutes successful rewrites in place. Returns the recovered
// classes in source order.
func rewriteProgram(program *parser.Node, cfg *walker.Config, opts rewriter.Options) []domain.RewrittenClass {
	return rewriteInNode(program, cfg, opts)
}

func rewriteInNode(node *parser.Node, cfg *walker.Config, opts rewriter.Options) []domain.RewrittenClass {
	if node == nil {
		return nil
	}

	var classes []domain.RewrittenClass

	for i, stmt := range node.Body {
		if stmt == nil {
			continue
		}
		if stmt.Type == parser.NodeVariableDeclaration {
			if replacement, class, ok := rewriteDeclaration(stmt, cfg, opts); ok {
				node.Body[i] = replacement
				classes = append(classes, class)
				continue
			}
		}
		classes = append(classes, rewriteInNode(stmt, cfg, opts)...)
	}

	for _, sub := range []*parser.Node{node.Consequent, node.Alternate, node.Handler, node.Finalizer} {
		classes = append(classes, rewriteInNode(sub, cfg, opts)...)
	}
	for _, c := range node.Cases {
		classes = append(classes, rewriteInNode(c, cfg, opts)...)
	}

	return classes
}

// rewriteDeclaration tries each declarator of a variable declaration
// against the compiled-class shapes. The printed source serves as the
// change oracle: a rewrite that bails out mid-extraction leaves the
// text identical and is treated as a no-match.
func rewriteDeclaration(stmt *parser.Node, cfg *walker.Config, opts rewriter.Options) (*parser.Node, domain.RewrittenClass, bool) {
	for _, decl := range stmt.Declarations {
		kind := rewriter.FindClassType(decl, stmt)
		if kind == rewriter.ShapeNone {
			continue
		}

		before := printer.Print(stmt)
		result := rewriter.RewriteWithOptions(decl, stmt, cfg, opts)
		if printer.Print(result) == before {
			continue
		}

		classNode := result
		shape := domain.ShapeDirectFactory
		if kind == rewriter.ShapeWrappedFactory {
			classNode = decl.Init.Callee
			shape = domain.ShapeWrappedFactory
		}

		return result, describeClass(classNode, shape, stmt.Location), true
	}
	return nil, domain.RewrittenClass{}, false
}

func describeClass(class *parser.Node, shape domain.ShapeKind, loc parser.Location) domain.RewrittenClass {
	desc := domain.RewrittenClass{
		Name:  class.Name,
		Shape: shape,
		Location: domain.SourceLocation{
			StartLine:   loc.StartLine,
			StartColumn: loc.StartCol,
			EndLine:     loc.EndLine,
			EndColumn:   loc.EndCol,
		},
	}
	if class.SuperClass != nil {
		desc.SuperClass = printer.Print(class.SuperClass)
	}
	for _, member := range class.Body {
		if member != nil && member.Name != "constructor" {
			desc.Methods++
		}
	}
	return desc
}

// writeResults applies the request's write mode to every changed file
func (s *RewriteServiceImpl) writeResults(response *domain.RewriteResponse, req domain.RewriteRequest) error {
	if req.DryRun {
		return nil
	}

	for _, file := range response.Files {
		if !file.Changed {
			continue
		}

		switch {
		case req.Write:
			if err := os.WriteFile(file.FilePath, []byte(file.Output), 0644); err != nil {
				return domain.NewOutputError(fmt.Sprintf("failed to write %s", file.FilePath), err)
			}
		case req.OutDir != "":
			target := outputPath(req.OutDir, file.FilePath)
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return domain.NewOutputError(fmt.Sprintf("failed to create %s", filepath.Dir(target)), err)
			}
			if err := os.WriteFile(target, []byte(file.Output), 0644); err != nil {
				return domain.NewOutputError(fmt.Sprintf("failed to write %s", target), err)
			}
		}
	}

	return nil
}

// outputPath mirrors a source path under the output directory.
// Relative paths keep their directory structure; absolute paths fall
// back to the base name.
func outputPath(outDir, filePath string) string {
	if filepath.IsAbs(filePath) {
		return filepath.Join(outDir, filepath.Base(filePath))
	}
	return filepath.Join(outDir, filePath)
}
