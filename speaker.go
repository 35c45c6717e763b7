package shapes

import "fmt"

// Speaker is implemented by animals that can introduce themselves.
type Speaker interface {
	Speak() string
}

type Dog struct {
	Name string
}

func (d Dog) Speak() string { return fmt.Sprintf("%s says Woof!", d.Name) }

type Cat struct {
	Name string
}

func (c Cat) Speak() string { return fmt.Sprintf("%s says Meow!", c.Name) }

// Chorus collects what each speaker says, in order.
func Chorus(speakers []Speaker) []string {
	out := make([]string, len(speakers))
	for i, s := range speakers {
		out[i] = s.Speak()
	}
	return out
}
