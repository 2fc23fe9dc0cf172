package types

import "strings"

// ResourceAddress identifies a fungible or non fungible resource type.
// Addresses arrive already validated by the manifest decoder, the analyzer
// only compares them and inspects the entity prefix.
type ResourceAddress string

// NonFungibleLocalID is the id of a single non fungible unit, unique within
// its resource.
type NonFungibleLocalID string

// GlobalAddress is the address of any global entity a manifest instruction
// can call into (accounts, components, packages, vaults).
type GlobalAddress string

// EntityKind is derived from the human readable prefix of an address and is
// the first half of the call classification key.
type EntityKind int32

const (
	EntityUnknown EntityKind = iota
	EntityAccount
	EntityComponent
	EntityPackage
	EntityResource
	EntityVault
)

var entityPrefix = map[string]EntityKind{
	"account_":        EntityAccount,
	"component_":      EntityComponent,
	"package_":        EntityPackage,
	"resource_":       EntityResource,
	"internal_vault_": EntityVault,
}

// Kind reports the entity family the address belongs to, EntityUnknown if
// the prefix is not recognized.
func (a GlobalAddress) Kind() EntityKind {
	for prefix, kind := range entityPrefix {
		if strings.HasPrefix(string(a), prefix) {
			return kind
		}
	}
	return EntityUnknown
}

// IsAccount is a shortcut for the most common classification check.
func (a GlobalAddress) IsAccount() bool {
	return a.Kind() == EntityAccount
}

func (k EntityKind) String() string {
	switch k {
	case EntityAccount:
		return "account"
	case EntityComponent:
		return "component"
	case EntityPackage:
		return "package"
	case EntityResource:
		return "resource"
	case EntityVault:
		return "vault"
	}
	return "unknown"
}

// ParseEntityKind is the inverse of EntityKind.String, used by the rule file
// loader.
func ParseEntityKind(s string) (EntityKind, error) {
	switch s {
	case "account":
		return EntityAccount, nil
	case "component":
		return EntityComponent, nil
	case "package":
		return EntityPackage, nil
	case "resource":
		return EntityResource, nil
	case "vault":
		return EntityVault, nil
	}
	return EntityUnknown, ErrRuleBadEntity
}
