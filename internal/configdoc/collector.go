// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"sort"

	"grimm.is/constructdoc/internal/errors"
	"grimm.is/constructdoc/internal/logging"
)

// Collector gathers the data for one document from its collaborators.
type Collector struct {
	source    FieldSource
	selectors SelectorFunc
	registry  PlatformRegistry
	logger    *logging.Logger
}

// NewCollector creates a Collector. A nil logger discards output.
func NewCollector(source FieldSource, selectors SelectorFunc, registry PlatformRegistry, logger *logging.Logger) *Collector {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Collector{
		source:    source,
		selectors: selectors,
		registry:  registry,
		logger:    logger.WithComponent("collector"),
	}
}

// CollectFields returns the provider's descriptors unchanged and in order.
func (c *Collector) CollectFields() ([]FieldDescriptor, error) {
	if c.source == nil {
		return nil, errors.New(errors.KindInternal, "no field source configured")
	}
	fields, err := c.source.Fields()
	if err != nil {
		return nil, errors.Wrap(err, errors.KindCollaborator, "collect fields")
	}
	c.logger.Debug("Collected fields", "count", len(fields))
	return fields, nil
}

// CollectSelectors evaluates the selector namespace for platformID.
func (c *Collector) CollectSelectors(platformID string) (SelectorMap, error) {
	if c.selectors == nil {
		return nil, errors.New(errors.KindInternal, "no selector evaluator configured")
	}
	selectors, err := c.selectors(platformID)
	if err != nil {
		err = errors.Wrap(err, errors.KindCollaborator, "evaluate selectors")
		return nil, errors.Attr(err, "platform", platformID)
	}
	c.logger.Debug("Collected selectors", "platform", platformID, "count", len(selectors))
	return selectors, nil
}

// CollectPlatforms computes unsupported = valid - supported. Supported ids
// that are missing from the valid set are kept in Supported and never appear
// in Unsupported. Both lists are deduplicated and sorted.
func (c *Collector) CollectPlatforms() PlatformSet {
	if c.registry == nil {
		return PlatformSet{Supported: []string{}, Unsupported: []string{}}
	}

	supported := make(map[string]struct{})
	for _, p := range c.registry.Supported() {
		supported[p] = struct{}{}
	}

	unsupported := make(map[string]struct{})
	for _, p := range c.registry.Valid() {
		if _, ok := supported[p]; !ok {
			unsupported[p] = struct{}{}
		}
	}

	set := PlatformSet{
		Supported:   sortedKeys(supported),
		Unsupported: sortedKeys(unsupported),
	}
	c.logger.Debug("Collected platforms", "supported", len(set.Supported), "unsupported", len(set.Unsupported))
	return set
}

// Collect runs all three collection steps for platformID.
func (c *Collector) Collect(platformID string) (*Metadata, error) {
	fields, err := c.CollectFields()
	if err != nil {
		return nil, err
	}
	selectors, err := c.CollectSelectors(platformID)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Platform:  platformID,
		Fields:    fields,
		Selectors: selectors,
		Platforms: c.CollectPlatforms(),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
