package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jrakru/spec-kit/internal/core/agent"
)

// Tracker step keys the provisioner reports into. Presentation registers
// labels for these before the run starts.
const (
	StepFetch    = "fetch"
	StepDownload = "download"
	StepExtract  = "extract"
	StepZipList  = "zip-list"
	StepFlatten  = "flatten"
	StepSummary  = "extracted-summary"
	StepRelocate = "relocate"
	StepChmod    = "chmod"
	StepCleanup  = "cleanup"
)

// ProvisionOptions configures one provisioning run.
type ProvisionOptions struct {
	// ProjectPath is the destination tree. When InPlace is true it already
	// exists (current directory) and is never removed on failure.
	ProjectPath string
	InPlace     bool

	// Agents in selection order. The first agent owns the shared specs
	// subtree; later agents merge through a top-level filter.
	Agents []agent.Agent
	Script ScriptType

	// Overrides select the template origin for every agent in the run.
	Overrides TemplateOverrides

	// DownloadDir receives remote archives before extraction. Defaults to
	// the process working directory.
	DownloadDir string
}

// ProvisionResult aggregates the outcome of a successful run.
type ProvisionResult struct {
	Merged      MergeSummary
	Relocation  RelocationSummary
	Permissions PermissionSummary
}

// Provisioner runs the provisioning pipeline: per agent, resolve a template
// source, extract it, and merge it into the project tree; then consolidate
// legacy layouts and normalize script permissions once.
type Provisioner struct {
	client   *ReleaseClient
	reporter Reporter
}

// NewProvisioner creates a Provisioner. A nil reporter discards updates.
func NewProvisioner(client *ReleaseClient, reporter Reporter) *Provisioner {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Provisioner{client: client, reporter: reporter}
}

// Run executes the pipeline. Agents are processed strictly in order so the
// "first agent owns the shared subtree" rule stays well-defined. On a fatal
// error a freshly created project directory is removed; an in-place target
// keeps whatever partial merge occurred (re-running is the recovery path).
func (p *Provisioner) Run(ctx context.Context, opts ProvisionOptions) (result *ProvisionResult, err error) {
	if len(opts.Agents) == 0 {
		return nil, fmt.Errorf("no agents selected")
	}
	if opts.DownloadDir == "" {
		cwd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("getting working directory: %w", wdErr)
		}
		opts.DownloadDir = cwd
	}

	createdProject := false
	if !opts.InPlace && !pathExists(opts.ProjectPath) {
		if err := os.MkdirAll(opts.ProjectPath, 0o755); err != nil {
			return nil, fmt.Errorf("creating project directory: %w", err)
		}
		createdProject = true
	}
	defer func() {
		if err != nil && createdProject {
			_ = os.RemoveAll(opts.ProjectPath)
		}
	}()

	result = &ProvisionResult{}
	specsPresent := pathExists(SpecsRoot(opts.ProjectPath))

	for i, ag := range opts.Agents {
		label := fmt.Sprintf("%s (%d/%d)", ag.DisplayName, i+1, len(opts.Agents))

		var filter map[string]bool
		if i > 0 {
			filter = map[string]bool{ag.RootName(): true}
		}

		// Given policy: the first agent preserves an already-present specs
		// subtree; a later agent competes for it only when its root is not
		// a known agent root (meaning its merge is not agent-scoped).
		preserve := false
		if i == 0 {
			preserve = specsPresent
		} else if !agent.IsKnownRoot(ag.RootName()) {
			preserve = true
		}

		summary, agentErr := p.provisionAgent(ctx, ag, label, MergeOptions{
			TopLevelFilter:        filter,
			PreserveExistingSpecs: preserve,
		}, opts)
		if agentErr != nil {
			return nil, fmt.Errorf("provisioning %s: %w", ag.DisplayName, agentErr)
		}
		result.Merged.Add(summary)

		specsPresent = specsPresent || pathExists(SpecsRoot(opts.ProjectPath))
	}

	p.reporter.Start(StepRelocate, "")
	result.Relocation = RelocateLegacyDirectories(opts.ProjectPath)
	p.reportRelocation(result.Relocation)

	result.Permissions = EnsureExecutableScripts(opts.ProjectPath)
	p.reportPermissions(result.Permissions)

	return result, nil
}

// provisionAgent runs resolve -> extract -> merge for a single agent.
// The staging area and any downloaded archive are released on every exit
// path, success or failure.
func (p *Provisioner) provisionAgent(ctx context.Context, ag agent.Agent, label string, mergeOpts MergeOptions, opts ProvisionOptions) (MergeSummary, error) {
	var summary MergeSummary
	tag := func(detail string) string { return label + " - " + detail }

	source, err := ResolveSource(ag.Key, opts.Script, opts.Overrides)
	if err != nil {
		p.reporter.Error(StepFetch, tag(err.Error()))
		return summary, err
	}

	archivePath := ""
	cleanupArchive := false

	switch source.Kind {
	case SourceRemoteRelease:
		p.reporter.Start(StepFetch, tag("contacting GitHub API"))
		asset, err := p.client.LatestTemplateAsset(ctx, source.RepoOwner, source.RepoName, source.Agent, source.Script)
		if err != nil {
			p.reporter.Error(StepFetch, tag(err.Error()))
			return summary, err
		}
		p.reporter.Complete(StepFetch, tag(fmt.Sprintf("release %s (%d bytes)", asset.Release, asset.Size)))

		p.reporter.Start(StepDownload, tag(asset.Name))
		archivePath, err = p.client.DownloadAsset(ctx, asset, opts.DownloadDir, func(downloaded, total int64) {
			if total > 0 {
				p.reporter.Start(StepDownload, tag(fmt.Sprintf("%s (%d%%)", asset.Name, downloaded*100/total)))
			}
		})
		if err != nil {
			p.reporter.Error(StepDownload, tag(err.Error()))
			return summary, err
		}
		cleanupArchive = true
		p.reporter.Complete(StepDownload, tag(asset.Name))
		source = &TemplateSource{Kind: SourceLocalArchive, Path: archivePath}
	case SourceLocalArchive:
		archivePath = source.Path
		p.reporter.Skip(StepFetch, tag("Local template archive"))
		p.reporter.Complete(StepDownload, tag(filepath.Base(archivePath)))
	case SourceLocalDir:
		p.reporter.Skip(StepFetch, tag("Local template directory"))
		p.reporter.Skip(StepDownload, tag(filepath.Base(source.Path)))
	}

	// The downloaded archive is removed after the extract+merge span,
	// success or failure; a caller-supplied archive is retained.
	defer func() {
		if cleanupArchive {
			_ = os.Remove(archivePath)
			p.reporter.Complete(StepCleanup, tag("Removed downloaded archive"))
		} else if opts.Overrides.LocalPath != "" {
			p.reporter.Skip(StepCleanup, tag("Local template retained"))
		}
	}()

	p.reporter.Start(StepExtract, tag("starting"))
	p.reporter.Start(StepZipList, tag("listing"))
	payload, err := PreparePayload(source)
	if err != nil {
		p.reporter.Error(StepExtract, tag(err.Error()))
		return summary, err
	}
	defer payload.Cleanup()

	p.reporter.Complete(StepZipList, tag(fmt.Sprintf("%d items", payload.Entries)))
	if payload.Flattened {
		p.reporter.Add(StepFlatten, "Flatten nested directory")
		p.reporter.Complete(StepFlatten, tag("applied"))
	}

	summary, err = MergeTree(payload.Root, opts.ProjectPath, mergeOpts)
	if err != nil {
		p.reporter.Error(StepExtract, tag(err.Error()))
		return summary, err
	}

	p.reporter.Complete(StepSummary, tag(fmt.Sprintf("%d files copied, %d preserved", summary.Copied, summary.Skipped)))
	p.reporter.Complete(StepExtract, tag("done"))
	return summary, nil
}

// reportRelocation summarizes the relocation pass for the tracker.
func (p *Provisioner) reportRelocation(s RelocationSummary) {
	if !s.Changed() {
		p.reporter.Skip(StepRelocate, "no changes needed")
		return
	}
	detail := ""
	if s.Legacy > 0 {
		detail += fmt.Sprintf("legacy %d, ", s.Legacy)
	}
	if s.Moved > 0 {
		detail += fmt.Sprintf("moved %d, ", s.Moved)
	}
	if s.Nested > 0 {
		detail += fmt.Sprintf("nested %d, ", s.Nested)
	}
	p.reporter.Complete(StepRelocate, detail[:len(detail)-2])
}

// reportPermissions summarizes the chmod pass for the tracker.
func (p *Provisioner) reportPermissions(s PermissionSummary) {
	detail := fmt.Sprintf("%d updated", s.Updated)
	if len(s.Failures) > 0 {
		p.reporter.Error(StepChmod, fmt.Sprintf("%s, %d failed", detail, len(s.Failures)))
		return
	}
	p.reporter.Complete(StepChmod, detail)
}
