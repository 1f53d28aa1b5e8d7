// Package field implements the single-field controller: one text buffer, one
// three-state value, a focus phase and a picker open flag kept consistent
// while the user types, steps with arrow keys or picks from a popup.
//
// Every edit emits a preview through OnChange with wasBlur=false. Blur emits
// exactly one commit with wasBlur=true whose value is Empty or Concrete; the
// only exception is a field with auto-erase disabled whose external value has
// never been set.
package field
