this is not go {{{
