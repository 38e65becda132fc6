package cname

import (
	"context"

	"git.home.luguber.info/inful/cnamepublish/internal/logfields"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin"
)

// AddName is the registry name of the resource-copy plugin.
const AddName = "add-cname"

// AddPlugin copies Resources/CNAME from the site into the output directory.
type AddPlugin struct {
	plugin.BasePlugin
}

// Add returns a plugin that publishes the site's existing Resources/CNAME file.
func Add() *AddPlugin {
	return &AddPlugin{}
}

// Metadata returns the plugin metadata.
func (p *AddPlugin) Metadata() plugin.PluginMetadata {
	return addMetadata
}

// OutputFiles lists the files written on success.
func (p *AddPlugin) OutputFiles() []string {
	return []string{OutputPath}
}

// Validate rejects any option; the plugin takes none.
func (p *AddPlugin) Validate(options map[string]any) error {
	return checkOptionKeys(options)
}

// Execute reads Resources/CNAME, rejects an empty file, and copies the original
// bytes to the output CNAME file. The content is decoded only for the emptiness
// check so line endings and a trailing newline survive unchanged.
func (p *AddPlugin) Execute(ctx context.Context, pluginCtx *plugin.PluginContext) error {
	content, err := pluginCtx.ReadText(ResourcePath)
	if err != nil {
		return err
	}
	if content == "" {
		return ErrListEmpty
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := pluginCtx.CopyFileToOutput(ResourcePath); err != nil {
		return err
	}
	pluginCtx.SetValue(DataKeyDomains, ParseContent(content))

	pluginCtx.LogInfo("Copied CNAME file from resources",
		logfields.Plugin(AddName),
		logfields.Path(ResourcePath),
		logfields.Bytes(len(content)))
	return nil
}

var addMetadata = plugin.PluginMetadata{
	Name:         AddName,
	Version:      version,
	Type:         plugin.PluginTypePublisher,
	Description:  "Generate CNAME from existing CNAME file in the Resources directory",
	Author:       author,
	Capabilities: []string{plugin.CapabilityCustomDomain.String()},
}
