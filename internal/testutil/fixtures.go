package testutil

// ShapesHCL is a small but complete system used across package tests. It
// resolves without errors.
const ShapesHCL = `
unit "shapes" {
  data "Id" {
    field "value" { type = i32 }
  }

  module "geo" {
    data "Point" {
      field "x" { type = i32 }
      field "y" { type = i32 }
    }

    function "shift" {
      param "p" { type = Point }
      param "d" { type = i32 }
      returns "out" { type = Point }

      spawn "out" {
        use "p" {}
        use "d" {}
      }
    }

    function "move" {
      param "p" { type = Point }
      param "d" { type = i32 }
      returns "moved" { type = Point }

      modify "p" {
        uses = ["p", "d"]
      }

      spawn "moved" {
        type = Point
        let_to "tmp" {
          func = "shift"
          args = ["p", "d"]
        }
        return "tmp" {}
      }
    }
  }
}
`
