// Package registry provides a generic, name-keyed factory mechanism: a base
// capability declares a table, concrete children bind themselves to it under
// string names, and calling code constructs the right child purely from a
// name known at runtime.
//
// One table exists per (base, constructor-argument signature) pair. Declare
// it as a package-level variable so registration happens during package
// initialization, free of load-order hazards:
//
//	type Fruit interface {
//		registry.Named
//		Ripe() bool
//	}
//
//	var Fruits = registry.NewBase[Fruit, registry.NoArgs](
//		registry.WithDescription("Edible plant products."),
//	)
//
//	var appleBinding = registry.Bind(Fruits, "Apple", func(registry.NoArgs) Fruit {
//		return &Apple{}
//	})
//
//	fruit, err := Fruits.Create("Apple", registry.NoArgs{})
//
// All table operations are safe for concurrent use. Creator functions run
// outside the table lock, so a slow constructor never stalls unrelated
// registrations.
package registry
