package codegen

// Preamble is the C text placed before all emitted declarations.  It defines
// the primitive type names in terms of C's fixed-width types.
const Preamble = `#include <stdint.h>

typedef uint8_t u8;
typedef uint16_t u16;
typedef uint32_t u32;
typedef uint64_t u64;
typedef int8_t i8;
typedef int16_t i16;
typedef int32_t i32;
typedef int64_t i64;
typedef float f32;
typedef double f64;
typedef int32_t b32;
typedef int8_t b8;
typedef uint8_t byte;

`
