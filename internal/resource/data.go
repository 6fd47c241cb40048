package resource

// Descriptor is one entry in a resource listing: a decodable identifier
// plus the human-facing name and description derived from the index record.
type Descriptor struct {
	identifier  string
	displayName string
	description string
}

func NewDescriptor(
	identifier string,
	displayName string,
	description string,
) Descriptor {
	return Descriptor{
		identifier:  identifier,
		displayName: displayName,
		description: description,
	}
}

func (d *Descriptor) Identifier() string {
	return d.identifier
}

func (d *Descriptor) DisplayName() string {
	return d.displayName
}

func (d *Descriptor) Description() string {
	return d.description
}
