package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Fruit is the base capability used throughout these tests.
type Fruit interface {
	Named
	Color() string
}

type Apple struct {
	Entity
	color string
}

func (a *Apple) Color() string { return a.color }

type Banana struct {
	Entity
}

func (b *Banana) Color() string { return "yellow" }

func newFruits() *Base[Fruit, NoArgs] {
	fruits := NewBase[Fruit, NoArgs](WithDescription("Edible plant products."))
	fruits.SetChild("Apple", func(NoArgs) Fruit { return &Apple{color: "red"} })
	fruits.SetChild("Banana", func(NoArgs) Fruit { return &Banana{} })
	return fruits
}

func TestBase_Create_KnownName(t *testing.T) {
	fruits := newFruits()

	fruit, err := fruits.Create("Apple", NoArgs{})
	require.NoError(t, err)
	require.Equal(t, "Apple", fruit.Name())
	require.Equal(t, "red", fruit.Color())
	require.Equal(t, `Registered sub-class "Apple".`, fruit.Info())
}

func TestBase_Create_UnknownName(t *testing.T) {
	fruits := newFruits()

	fruit, err := fruits.Create("Cherry", NoArgs{})
	require.ErrorIs(t, err, ErrUnknown)
	require.Nil(t, fruit)
	require.False(t, fruits.HasChild("Cherry"))
}

func TestBase_Create_EachCallConstructsFresh(t *testing.T) {
	fruits := newFruits()

	first, err := fruits.Create("Apple", NoArgs{})
	require.NoError(t, err)
	second, err := fruits.Create("Apple", NoArgs{})
	require.NoError(t, err)
	require.NotSame(t, first, second)
}

func TestBase_HasChild(t *testing.T) {
	fruits := newFruits()

	require.True(t, fruits.HasChild("Apple"))
	require.True(t, fruits.HasChild("Banana"))
	require.False(t, fruits.HasChild("Cherry"))
	require.False(t, fruits.HasChild(""))
}

func TestBase_SetChild_RejectsEmptyName(t *testing.T) {
	fruits := NewBase[Fruit, NoArgs]()

	ok := fruits.SetChild("", func(NoArgs) Fruit { return &Apple{} })
	require.False(t, ok)
	require.Equal(t, 0, fruits.Len())
}

func TestBase_SetChild_RejectsDuplicate(t *testing.T) {
	fruits := newFruits()

	// Second registration fails regardless of which child attempts it,
	// and the table is unchanged by the failed attempt.
	ok := fruits.SetChild("Apple", func(NoArgs) Fruit { return &Banana{} })
	require.False(t, ok)

	fruit, err := fruits.Create("Apple", NoArgs{})
	require.NoError(t, err)
	require.Equal(t, "red", fruit.Color())
}

func TestBase_Register_ReportsRejection(t *testing.T) {
	fruits := newFruits()

	err := fruits.Register("", func(NoArgs) Fruit { return &Apple{} })
	require.ErrorIs(t, err, ErrEmptyName)

	err = fruits.Register("Apple", func(NoArgs) Fruit { return &Banana{} })
	require.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, fruits.Register("Cherry", func(NoArgs) Fruit { return &Apple{color: "dark red"} }))
	require.True(t, fruits.HasChild("Cherry"))
}

func TestBase_RemoveChild(t *testing.T) {
	fruits := newFruits()

	require.True(t, fruits.RemoveChild("Apple"))
	require.False(t, fruits.HasChild("Apple"))

	_, err := fruits.Create("Apple", NoArgs{})
	require.ErrorIs(t, err, ErrUnknown)

	// Absent name is a reported no-op.
	require.False(t, fruits.RemoveChild("Apple"))
	require.False(t, fruits.RemoveChild("Cherry"))
}

func TestBase_RemoveChild_DoesNotAffectInstances(t *testing.T) {
	fruits := newFruits()

	fruit, err := fruits.Create("Apple", NoArgs{})
	require.NoError(t, err)

	require.True(t, fruits.RemoveChild("Apple"))
	require.Equal(t, "Apple", fruit.Name())
	require.Equal(t, "red", fruit.Color())
}

func TestBase_GetChildren_SortedRegardlessOfOrder(t *testing.T) {
	fruits := NewBase[Fruit, NoArgs]()
	for _, name := range []string{"Banana", "Apple", "Cherry"} {
		require.True(t, fruits.SetChild(name, func(NoArgs) Fruit { return &Apple{} }))
	}

	require.Equal(t, []string{"Apple", "Banana", "Cherry"}, fruits.GetChildren())
}

func TestBase_FruitScenario(t *testing.T) {
	fruits := newFruits()

	apple, err := fruits.Create("Apple", NoArgs{})
	require.NoError(t, err)
	require.Equal(t, "Apple", apple.Name())

	_, err = fruits.Create("Cherry", NoArgs{})
	require.ErrorIs(t, err, ErrUnknown)

	require.Equal(t, []string{"Apple", "Banana"}, fruits.GetChildren())

	require.True(t, fruits.RemoveChild("Apple"))
	require.False(t, fruits.HasChild("Apple"))
	_, err = fruits.Create("Apple", NoArgs{})
	require.ErrorIs(t, err, ErrUnknown)
}

// Message is a base capability with a non-trivial argument tuple.
type Message interface {
	Named
	Text() string
}

type MessageArgs struct {
	ID   int
	Body string
}

type plainMessage struct {
	Entity
	text string
}

func (m *plainMessage) Text() string { return m.text }

func TestBase_Create_ForwardsArguments(t *testing.T) {
	messages := NewBase[Message, MessageArgs]()
	messages.SetChild("plain", func(args MessageArgs) Message {
		return &plainMessage{text: fmt.Sprintf("#%d %s", args.ID, args.Body)}
	})

	msg, err := messages.Create("plain", MessageArgs{ID: 7, Body: "hello"})
	require.NoError(t, err)
	require.Equal(t, "#7 hello", msg.Text())
	require.Equal(t, "plain", msg.Name())
}

func TestEntity_DefaultsWhenConstructedDirectly(t *testing.T) {
	apple := &Apple{color: "green"}
	require.Equal(t, "", apple.Name())
	require.Equal(t, "Register base class.", apple.Info())
}

func TestBase_Description(t *testing.T) {
	fruits := newFruits()
	require.Equal(t, "Edible plant products.", fruits.Description())

	bare := NewBase[Fruit, NoArgs]()
	require.Equal(t, "", bare.Description())
}

func TestBase_ConcurrentAccess(t *testing.T) {
	fruits := newFruits()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("Fruit%02d", i)
			fruits.SetChild(name, func(NoArgs) Fruit { return &Apple{} })
			_, _ = fruits.Create(name, NoArgs{})
			fruits.HasChild(name)
			fruits.GetChildren()
			fruits.RemoveChild(name)
		}(i)
	}
	wg.Wait()

	require.Equal(t, []string{"Apple", "Banana"}, fruits.GetChildren())
}

func TestBase_ReentrantCreator(t *testing.T) {
	fruits := newFruits()

	// A creator that consults the table must not deadlock: construction
	// happens outside the lock.
	fruits.SetChild("Mirror", func(NoArgs) Fruit {
		inner, err := fruits.Create("Apple", NoArgs{})
		require.NoError(t, err)
		return inner
	})

	fruit, err := fruits.Create("Mirror", NoArgs{})
	require.NoError(t, err)
	require.Equal(t, "Mirror", fruit.Name())
}
