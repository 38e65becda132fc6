package cname

import (
	"context"
	"slices"

	"git.home.luguber.info/inful/cnamepublish/internal/logfields"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin"
)

// GenerateName is the registry name of the list-based plugin.
const GenerateName = "generate-cname"

// GeneratePlugin writes a CNAME file from an explicit list of domain names.
type GeneratePlugin struct {
	plugin.BasePlugin
	domainNames []string
}

// Generate returns a plugin for primary followed by others, in that order.
func Generate(primary string, others ...string) *GeneratePlugin {
	return GenerateFromList(append([]string{primary}, others...))
}

// GenerateFromList returns a plugin that writes domainNames to the output CNAME file.
// The slice is copied; the list is validated only when the plugin executes.
func GenerateFromList(domainNames []string) *GeneratePlugin {
	return &GeneratePlugin{domainNames: slices.Clone(domainNames)}
}

// DomainNames returns a copy of the configured list.
func (p *GeneratePlugin) DomainNames() []string {
	return slices.Clone(p.domainNames)
}

// Metadata returns the plugin metadata.
func (p *GeneratePlugin) Metadata() plugin.PluginMetadata {
	return generateMetadata
}

// OutputFiles lists the files written on success.
func (p *GeneratePlugin) OutputFiles() []string {
	return []string{OutputPath}
}

// Validate checks configuration options; the domain list itself is checked in Execute.
func (p *GeneratePlugin) Validate(options map[string]any) error {
	return checkOptionKeys(options, optDomains)
}

// Execute validates the list and writes it, newline-joined, to the output CNAME file.
func (p *GeneratePlugin) Execute(ctx context.Context, pluginCtx *plugin.PluginContext) error {
	if err := Validate(p.domainNames); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	content := Content(p.domainNames)
	if err := pluginCtx.CreateOutputFile(OutputPath, []byte(content)); err != nil {
		return err
	}
	pluginCtx.SetValue(DataKeyDomains, p.DomainNames())

	pluginCtx.LogInfo("Generated CNAME file",
		logfields.Plugin(GenerateName),
		logfields.Domain(p.domainNames[0]),
		logfields.DomainCount(len(p.domainNames)))
	return nil
}

var generateMetadata = plugin.PluginMetadata{
	Name:         GenerateName,
	Version:      version,
	Type:         plugin.PluginTypePublisher,
	Description:  "Generate CNAME from provided domain names",
	Author:       author,
	Capabilities: []string{plugin.CapabilityCustomDomain.String()},
}
